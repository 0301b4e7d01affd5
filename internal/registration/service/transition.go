package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"flock/internal/notify"
	"flock/internal/registration/models"
	dErrors "flock/pkg/domain-errors"
	"flock/pkg/email"
	"flock/pkg/requestcontext"
)

// TransitionResult reports the outcome of a persisted status change.
//
// Notified distinguishes full success from partial success: when the status
// write succeeded but the dispatcher failed, Notified is false and
// DispatchErr carries the cause. The state change is never rolled back on
// dispatch failure, so callers must word partial success as "status updated,
// but the notification could not be sent" rather than as an error.
type TransitionResult struct {
	Registration *models.Registration
	Notified     bool
	DispatchErr  error
}

// ApplyTransition validates the target status, persists it, and dispatches
// the disposition notification.
//
// Any status may move to any other status, including to itself: operators
// correct mistakes, and a re-affirmed disposition is an explicit action that
// still notifies. The dispatcher is called only after the store confirmed the
// write, sequentially, and its failure does not retry or roll back the write.
func (s *Service) ApplyTransition(ctx context.Context, id uuid.UUID, target models.Status) (*TransitionResult, error) {
	start := time.Now()
	defer s.metrics.ObserveTransition(start)

	// Unreachable through the mutation surface, whose status set is closed.
	if !target.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid target status: "+string(target))
	}

	reg, err := s.store.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}

	s.invalidateSummary(ctx)
	s.metrics.IncrementTransition(s.domain.Key, target.String())

	name := reg.Contact.Name
	if name == "" {
		name = email.DeriveDisplayName(reg.Contact.Email)
	}
	payload := notify.Payload{
		RegistrationID: reg.ID,
		Email:          reg.Contact.Email,
		Name:           name,
		SubjectID:      reg.SubjectID,
		Domain:         s.domain.Key,
		Disposition:    target,
	}

	result := &TransitionResult{Registration: reg, Notified: true}
	if err := s.notifier.Send(ctx, payload); err != nil {
		result.Notified = false
		result.DispatchErr = err
		s.metrics.IncrementDispatchFailure(s.domain.Key)
		s.logger.WarnContext(ctx, "status persisted but notification failed",
			"request_id", requestcontext.RequestID(ctx),
			"domain", s.domain.Key,
			"registration_id", reg.ID,
			"disposition", target,
			"error", err,
		)
		return result, nil
	}

	s.logger.InfoContext(ctx, "status transition applied",
		"request_id", requestcontext.RequestID(ctx),
		"domain", s.domain.Key,
		"registration_id", reg.ID,
		"disposition", target,
	)
	return result, nil
}
