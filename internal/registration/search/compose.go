// Package search turns the filter inputs of a listing surface into a
// normalized criteria object. Compose is pure and deterministic so the exact
// routing rules stay property-testable.
package search

import (
	"strings"

	"flock/internal/registration/models"
)

// Mode selects how free text is routed into criteria fields.
type Mode string

const (
	// ModeGeneral routes free text by content: text containing "@" filters
	// by email, anything else filters by subject title.
	ModeGeneral Mode = "general"
	// ModeEmail always routes free text to the email filter.
	ModeEmail Mode = "email"
	// ModeSubject targets the subject title using the explicit subject text.
	ModeSubject Mode = "subject"
)

// ParseMode maps a raw mode string to a Mode. The domain-specific aliases
// "group" and "event" target the subject. Unknown or empty input falls back
// to general.
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "email":
		return ModeEmail
	case "subject", "group", "event":
		return ModeSubject
	default:
		return ModeGeneral
	}
}

// Compose builds criteria from the search inputs.
//
// Routing rules:
//   - email mode, or general mode with free text containing "@": email filter.
//     The composer does not validate email syntax, it only routes.
//   - subject mode with non-empty subject text: subject-title filter.
//   - general mode with non-empty free text not containing "@": subject-title
//     filter. A title that itself contains "@" is therefore misrouted to the
//     email filter; this matches the shipped behavior of the listing screens
//     and is pinned down by tests so any change is intentional.
//   - a non-nil status always composes with whichever text filter applies.
func Compose(mode Mode, freeText, subjectText string, status *models.Status) models.Criteria {
	var criteria models.Criteria

	freeText = strings.TrimSpace(freeText)
	subjectText = strings.TrimSpace(subjectText)

	switch {
	case mode == ModeEmail && freeText != "":
		criteria.Email = freeText
	case mode == ModeGeneral && freeText != "" && strings.Contains(freeText, "@"):
		criteria.Email = freeText
	case mode == ModeSubject && subjectText != "":
		criteria.SubjectTitle = subjectText
	case mode == ModeGeneral && freeText != "":
		criteria.SubjectTitle = freeText
	}

	if status != nil {
		s := *status
		criteria.Status = &s
	}

	return criteria
}
