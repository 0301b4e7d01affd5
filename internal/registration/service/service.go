// Package service orchestrates the registration workflow for one domain:
// sign-up creation, status transitions with notification dispatch, deletion,
// and the paginated, status-summarized listing view.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"flock/internal/domain"
	"flock/internal/notify"
	"flock/internal/registration/cache"
	regmetrics "flock/internal/registration/metrics"
	"flock/internal/registration/models"
	dErrors "flock/pkg/domain-errors"
	"flock/pkg/platform/sentinel"
	"flock/pkg/requestcontext"
)

// Store is the persistence boundary for one registration domain. Pure data
// access; business rules stay in this package.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) (*models.Registration, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	ListAll(ctx context.Context) ([]*models.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Registration, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, criteria models.Criteria) ([]*models.Registration, error)
}

// Service is one domain's registration workflow engine.
type Service struct {
	domain   domain.Descriptor
	store    Store
	notifier notify.Dispatcher
	logger   *slog.Logger
	metrics  *regmetrics.Metrics
	summary  cache.Summary
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *regmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSummaryCache enables cached status-count summaries.
func WithSummaryCache(c cache.Summary) Option {
	return func(s *Service) {
		s.summary = c
	}
}

// New constructs the workflow engine for a domain. The store and notifier are
// the domain-specific collaborators; everything else is shared.
func New(d domain.Descriptor, store Store, notifier notify.Dispatcher, opts ...Option) *Service {
	s := &Service{
		domain:   d,
		store:    store,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Domain exposes the descriptor for transports that render vocabulary.
func (s *Service) Domain() domain.Descriptor {
	return s.domain
}

// Draft is the input of a public sign-up action.
type Draft struct {
	SubjectID string
	Contact   models.Contact
	UserID    *uuid.UUID
}

// Register creates a pending registration. Duplicate (subject, email) pairs
// are rejected with a conflict, never overwritten.
func (s *Service) Register(ctx context.Context, draft Draft) (*models.Registration, error) {
	reg, err := models.NewRegistration(draft.SubjectID, draft.Contact, draft.UserID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, reg)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyRegistered):
			s.metrics.IncrementDuplicateRejected(s.domain.Key)
			return nil, dErrors.New(dErrors.CodeConflict,
				"this email is already registered for this "+s.domain.SubjectLabel)
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "unknown "+s.domain.SubjectLabel)
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registration store unavailable")
		}
	}

	s.invalidateSummary(ctx)
	s.metrics.IncrementCreated(s.domain.Key)
	s.logger.InfoContext(ctx, "registration created",
		"request_id", requestcontext.RequestID(ctx),
		"domain", s.domain.Key,
		"registration_id", created.ID,
		"subject_id", created.SubjectID,
	)
	return created, nil
}

// Get returns a single registration.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	reg, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}
	return reg, nil
}

// Delete removes a registration outright. Independent of the transition state
// machine: irreversible, and no notification is sent.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.wrapStoreErr(err)
	}

	s.invalidateSummary(ctx)
	s.logger.InfoContext(ctx, "registration deleted",
		"request_id", requestcontext.RequestID(ctx),
		"domain", s.domain.Key,
		"registration_id", id,
	)
	return nil
}

func (s *Service) wrapStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, s.domain.Entity+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "registration store unavailable")
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.summary != nil {
		s.summary.Invalidate(ctx, s.domain.Key)
	}
}
