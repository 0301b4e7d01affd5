// Package domain describes the three registration domains the engine serves.
// One generic engine is instantiated per descriptor instead of three drifting
// copies of the same workflow.
package domain

import (
	"flock/internal/registration/models"
	dErrors "flock/pkg/domain-errors"
)

// Descriptor parameterizes the registration engine for one domain: URL slug,
// entity naming for messages and logs, and the operator-facing disposition
// vocabulary.
type Descriptor struct {
	// Key is the stable identifier used in URLs, store rows, metric labels
	// and notification payloads.
	Key string

	// Entity names the registration record ("RSVP", "registration", "sign-up").
	Entity string

	// SubjectLabel names the thing being registered for ("event", "home group",
	// "serving opportunity").
	SubjectLabel string

	// confirmedLabel is what this domain's surfaces call the confirmed state.
	confirmedLabel string
}

var (
	Events = Descriptor{
		Key:            "events",
		Entity:         "RSVP",
		SubjectLabel:   "event",
		confirmedLabel: "confirmed",
	}
	HomeGroups = Descriptor{
		Key:            "homegroups",
		Entity:         "registration",
		SubjectLabel:   "home group",
		confirmedLabel: "approved",
	}
	Serving = Descriptor{
		Key:            "serving",
		Entity:         "sign-up",
		SubjectLabel:   "serving opportunity",
		confirmedLabel: "approved",
	}
)

// All returns every domain descriptor, in mount order.
func All() []Descriptor {
	return []Descriptor{Events, HomeGroups, Serving}
}

// ByKey resolves a URL slug to its descriptor.
func ByKey(key string) (Descriptor, bool) {
	for _, d := range All() {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// DispositionLabel renders a canonical status in this domain's vocabulary.
func (d Descriptor) DispositionLabel(s models.Status) string {
	if s == models.StatusConfirmed {
		return d.confirmedLabel
	}
	return s.String()
}

// ParseDisposition maps an operator-supplied status string, including this
// domain's synonym for confirmed, to the canonical status. The synonym stops
// here; the core never sees two spellings.
func (d Descriptor) ParseDisposition(raw string) (models.Status, error) {
	if raw == d.confirmedLabel {
		return models.StatusConfirmed, nil
	}
	s, err := models.ParseStatus(raw)
	if err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			"invalid status: must be 'pending', '"+d.confirmedLabel+"' or 'declined'")
	}
	return s, nil
}
