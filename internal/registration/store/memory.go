package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"flock/internal/registration/models"
	"flock/pkg/platform/sentinel"
)

// Memory is an in-memory registration store for one domain. It keeps local
// development and unit tests free of external infrastructure and intentionally
// favors clarity over performance.
type Memory struct {
	mu       sync.RWMutex
	regs     map[uuid.UUID]*models.Registration
	subjects map[string]string // subject id -> title
}

// NewMemory creates an empty in-memory store. Subjects must be added before
// registrations can reference them.
func NewMemory() *Memory {
	return &Memory{
		regs:     make(map[uuid.UUID]*models.Registration),
		subjects: make(map[string]string),
	}
}

// AddSubject registers a subject (event, group, opportunity) the store will
// accept sign-ups for. The persistence transport owns subjects; this mirrors
// just enough of it for search and referential checks.
func (s *Memory) AddSubject(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[id] = title
}

// Create assigns an ID and stores the registration. Returns
// sentinel.ErrNotFound when the subject is unknown and
// sentinel.ErrAlreadyRegistered when the (subject, email) pair exists.
func (s *Memory) Create(_ context.Context, reg *models.Registration) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[reg.SubjectID]; !ok {
		return nil, fmt.Errorf("subject %s: %w", reg.SubjectID, sentinel.ErrNotFound)
	}
	for _, existing := range s.regs {
		if existing.SubjectID == reg.SubjectID && existing.Contact.Email == reg.Contact.Email {
			return nil, sentinel.ErrAlreadyRegistered
		}
	}

	stored := *reg
	stored.ID = uuid.New()
	s.regs[stored.ID] = &stored

	out := stored
	return &out, nil
}

// FindByID returns the registration or sentinel.ErrNotFound.
func (s *Memory) FindByID(_ context.Context, id uuid.UUID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.regs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *reg
	return &out, nil
}

// ListAll returns every registration, ordered by creation time then ID so one
// read is stable.
func (s *Memory) ListAll(ctx context.Context) ([]*models.Registration, error) {
	return s.Search(ctx, models.Criteria{})
}

// UpdateStatus is a raw status write; transition validation is the
// controller's job.
func (s *Memory) UpdateStatus(_ context.Context, id uuid.UUID, status models.Status) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, ok := s.regs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	reg.Status = status

	out := *reg
	return &out, nil
}

// Delete removes the registration outright. Irreversible.
func (s *Memory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.regs[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.regs, id)
	return nil
}

// Search returns the subset matching all populated criteria fields. Empty
// criteria return the full collection. Text filters are case-insensitive
// substring matches; the subject-title filter consults the subject directory.
func (s *Memory) Search(_ context.Context, criteria models.Criteria) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*models.Registration, 0, len(s.regs))
	for _, reg := range s.regs {
		if !s.matches(reg, criteria) {
			continue
		}
		out := *reg
		matches = append(matches, &out)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})
	return matches, nil
}

func (s *Memory) matches(reg *models.Registration, criteria models.Criteria) bool {
	if criteria.Email != "" &&
		!strings.Contains(strings.ToLower(reg.Contact.Email), strings.ToLower(criteria.Email)) {
		return false
	}
	if criteria.SubjectTitle != "" {
		title := s.subjects[reg.SubjectID]
		if !strings.Contains(strings.ToLower(title), strings.ToLower(criteria.SubjectTitle)) {
			return false
		}
	}
	if criteria.Status != nil && reg.Status != *criteria.Status {
		return false
	}
	return true
}
