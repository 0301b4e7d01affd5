package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"flock/internal/domain"
	"flock/internal/notify"
	"flock/internal/registration/models"
	"flock/internal/registration/store"
	dErrors "flock/pkg/domain-errors"
)

type TransitionSuite struct {
	suite.Suite
	store    *store.Memory
	notifier *notify.Recorder
	service  *Service
	ctx      context.Context
}

func (s *TransitionSuite) SetupTest() {
	s.store = store.NewMemory()
	s.store.AddSubject("spring-retreat", "Spring Retreat")
	s.notifier = notify.NewRecorder()
	s.service = New(domain.Events, s.store, s.notifier)
	s.ctx = context.Background()
}

func TestTransitionSuite(t *testing.T) {
	suite.Run(t, new(TransitionSuite))
}

func (s *TransitionSuite) registerAt(email string, status models.Status) *models.Registration {
	created, err := s.service.Register(s.ctx, Draft{
		SubjectID: "spring-retreat",
		Contact:   models.Contact{Email: email},
	})
	s.Require().NoError(err)
	if status != models.StatusPending {
		_, err := s.store.UpdateStatus(s.ctx, created.ID, status)
		s.Require().NoError(err)
		created.Status = status
	}
	return created
}

// TestAllTransitionPairs verifies every ordered status pair is legal,
// including transitioning to the current status, and that each applied
// transition dispatches exactly one notification.
func (s *TransitionSuite) TestAllTransitionPairs() {
	for _, from := range models.Statuses() {
		for _, to := range models.Statuses() {
			s.Run(from.String()+" to "+to.String(), func() {
				reg := s.registerAt(uuid.NewString()+"@example.com", from)
				before := len(s.notifier.Sent())

				result, err := s.service.ApplyTransition(s.ctx, reg.ID, to)
				s.Require().NoError(err)
				s.True(result.Notified)
				s.Equal(to, result.Registration.Status)

				stored, err := s.store.FindByID(s.ctx, reg.ID)
				s.Require().NoError(err)
				s.Equal(to, stored.Status)

				sent := s.notifier.Sent()
				s.Require().Len(sent, before+1, "exactly one dispatch per transition")
				s.Equal(reg.ID, sent[before].RegistrationID)
				s.Equal(to, sent[before].Disposition)
			})
		}
	}
}

// TestDispatchPayload verifies the notification carries full identity,
// including the derived fallback name.
func (s *TransitionSuite) TestDispatchPayload() {
	reg := s.registerAt("jane.m.doe@example.com", models.StatusPending)

	result, err := s.service.ApplyTransition(s.ctx, reg.ID, models.StatusConfirmed)
	s.Require().NoError(err)
	s.True(result.Notified)

	sent := s.notifier.Sent()
	s.Require().Len(sent, 1)
	s.Equal("jane.m.doe@example.com", sent[0].Email)
	s.Equal("Jane Doe", sent[0].Name)
	s.Equal("spring-retreat", sent[0].SubjectID)
	s.Equal("events", sent[0].Domain)
}

// TestDispatchFailure verifies partial success: the status write survives a
// failed dispatch and the outcome reports it without an error.
func (s *TransitionSuite) TestDispatchFailure() {
	reg := s.registerAt("partial@example.com", models.StatusPending)

	dispatchErr := errors.New("broker unreachable")
	s.notifier.FailWith(dispatchErr)

	result, err := s.service.ApplyTransition(s.ctx, reg.ID, models.StatusConfirmed)
	s.Require().NoError(err, "partial success is not an error")
	s.False(result.Notified)
	s.ErrorIs(result.DispatchErr, dispatchErr)

	stored, err := s.store.FindByID(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusConfirmed, stored.Status, "status change is never rolled back")
}

// TestTransitionFailures verifies nothing dispatches when the write fails.
func (s *TransitionSuite) TestTransitionFailures() {
	s.Run("unknown registration maps to not found", func() {
		_, err := s.service.ApplyTransition(s.ctx, uuid.New(), models.StatusConfirmed)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Empty(s.notifier.Sent(), "no dispatch without a persisted write")
	})

	s.Run("invalid target status is rejected before any write", func() {
		reg := s.registerAt("invalid@example.com", models.StatusPending)

		_, err := s.service.ApplyTransition(s.ctx, reg.ID, models.Status("cancelled"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		stored, err := s.store.FindByID(s.ctx, reg.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, stored.Status)
		s.Empty(s.notifier.Sent())
	})
}

// TestLifecycleDispatchCount walks the common confirm-then-decline flow and
// checks the dispatcher saw exactly two sends.
func (s *TransitionSuite) TestLifecycleDispatchCount() {
	reg := s.registerAt("flow@example.com", models.StatusPending)

	_, err := s.service.ApplyTransition(s.ctx, reg.ID, models.StatusConfirmed)
	s.Require().NoError(err)
	_, err = s.service.ApplyTransition(s.ctx, reg.ID, models.StatusDeclined)
	s.Require().NoError(err)

	sent := s.notifier.Sent()
	s.Require().Len(sent, 2)
	s.Equal(models.StatusConfirmed, sent[0].Disposition)
	s.Equal(models.StatusDeclined, sent[1].Disposition)
}
