package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "flock/pkg/domain-errors"
	"flock/pkg/email"
)

// Contact identifies the person behind a registration. Email is the
// uniqueness and search key; Name falls back to the email local part.
type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Registration is a sign-up record linking a contact to a subject (an event,
// home group, or serving opportunity) with a disposition status.
//
// Invariants:
//   - Status is always one of pending, confirmed, declined
//   - (SubjectID, Contact.Email) is unique per subject; the store rejects
//     duplicates instead of overwriting
//   - CreatedAt is immutable after creation
//   - Only the transition controller changes Status after creation
type Registration struct {
	ID        uuid.UUID  `json:"id"`
	SubjectID string     `json:"subject_id"`
	Contact   Contact    `json:"contact"`
	Status    Status     `json:"status"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewRegistration validates a draft and returns a pending registration.
// The store assigns the ID on create.
func NewRegistration(subjectID string, contact Contact, userID *uuid.UUID, now time.Time) (*Registration, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "subject id is required")
	}

	contact.Email = strings.TrimSpace(strings.ToLower(contact.Email))
	if contact.Email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(contact.Email); err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}

	contact.Name = strings.TrimSpace(contact.Name)
	if contact.Name == "" {
		contact.Name = email.DeriveDisplayName(contact.Email)
	}
	contact.Phone = strings.TrimSpace(contact.Phone)

	return &Registration{
		SubjectID: subjectID,
		Contact:   contact,
		Status:    StatusPending,
		UserID:    userID,
		CreatedAt: now,
	}, nil
}
