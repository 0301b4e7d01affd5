// Package notify defines the boundary to the out-of-band notification
// collaborator. The engine only needs a typed success/failure signal; how
// delivery happens (kafka + email worker, in-process channel) is an
// implementation behind Dispatcher.
package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"flock/internal/registration/models"
)

// ErrDispatchFailed wraps any dispatcher failure so the transition controller
// can classify it without knowing the transport.
var ErrDispatchFailed = errors.New("notification dispatch failed")

// Payload carries enough identity for the collaborator to render a
// notification without a second lookup. Name is never empty: the controller
// falls back to a name derived from the email local part.
type Payload struct {
	RegistrationID uuid.UUID     `json:"registration_id"`
	Email          string        `json:"email"`
	Name           string        `json:"name"`
	SubjectID      string        `json:"subject_id"`
	Domain         string        `json:"domain"`
	Disposition    models.Status `json:"disposition"`
}

// Dispatcher is the abstract notification collaborator. Send is invoked
// exactly once per disposition change, only after the status write succeeded,
// and must report failure as an error rather than swallowing it.
type Dispatcher interface {
	Send(ctx context.Context, p Payload) error
}
