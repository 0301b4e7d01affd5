package handler

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"flock/internal/domain"
	"flock/internal/registration/models"
	"flock/internal/registration/search"
	"flock/internal/registration/service"
	dErrors "flock/pkg/domain-errors"
)

// SignupRequest is the body of POST /{domain}/{subjectID}/registrations.
type SignupRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	UserID string `json:"user_id"`

	parsedUserID *uuid.UUID
}

// Validate normalizes and checks the request before any store call.
// Implements httputil.Validatable.
func (r *SignupRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}

	if len(r.Name) > 128 {
		return dErrors.New(dErrors.CodeValidation, "name must be 128 characters or less")
	}
	if len(r.Phone) > 32 {
		return dErrors.New(dErrors.CodeValidation, "phone must be 32 characters or less")
	}

	r.UserID = strings.TrimSpace(r.UserID)
	if r.UserID != "" {
		parsed, err := uuid.Parse(r.UserID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "user_id must be a UUID")
		}
		r.parsedUserID = &parsed
	}
	return nil
}

// ParsedUserID returns the optional account link, nil for guest sign-ups.
func (r *SignupRequest) ParsedUserID() *uuid.UUID {
	return r.parsedUserID
}

// listQuery is the parsed query surface input.
type listQuery struct {
	Criteria models.Criteria
	Page     int
	PageSize int
}

// parseListQuery maps the listing surface's query parameters through the
// criteria composer. The status filter accepts the domain's vocabulary
// ("approved" on home-group and serving surfaces).
func parseListQuery(r *http.Request, d domain.Descriptor) (listQuery, error) {
	q := r.URL.Query()

	var status *models.Status
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		parsed, err := d.ParseDisposition(raw)
		if err != nil {
			return listQuery{}, err
		}
		status = &parsed
	}

	criteria := search.Compose(
		search.ParseMode(q.Get("mode")),
		q.Get("q"),
		q.Get("subject"),
		status,
	)

	page := positiveIntParam(q.Get("page"), 1)
	pageSize := positiveIntParam(q.Get("page_size"), service.DefaultPageSize)

	return listQuery{Criteria: criteria, Page: page, PageSize: pageSize}, nil
}

func positiveIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
