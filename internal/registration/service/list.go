package service

import (
	"context"
	"time"

	"flock/internal/registration/models"
	dErrors "flock/pkg/domain-errors"
)

// DefaultPageSize bounds listing responses when the caller does not choose.
const DefaultPageSize = 20

// MaxPageSize caps listing responses regardless of what the caller asks for.
const MaxPageSize = 200

// List builds the paginated, status-summarized view of the (possibly
// filtered) registration collection. Status counts cover the full filtered
// collection, not just the returned page, so they always sum to Total.
func (s *Service) List(ctx context.Context, criteria models.Criteria, page, pageSize int) (*models.Page, error) {
	start := time.Now()
	defer s.metrics.ObserveList(start)

	regs, err := s.store.Search(ctx, criteria)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registration store unavailable")
	}

	return &models.Page{
		Items:        paginate(regs, page, pageSize),
		Total:        len(regs),
		StatusCounts: countByStatus(regs),
	}, nil
}

// Summary returns the unfiltered status counts for the domain, served from
// cache when available. Mutations invalidate, so staleness is bounded by the
// cache TTL across processes and is zero within one.
func (s *Service) Summary(ctx context.Context) (models.StatusCounts, error) {
	if s.summary != nil {
		if counts, ok := s.summary.Get(ctx, s.domain.Key); ok {
			return counts, nil
		}
	}

	regs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "registration store unavailable")
	}
	counts := countByStatus(regs)

	if s.summary != nil {
		s.summary.Set(ctx, s.domain.Key, counts)
	}
	return counts, nil
}

// paginate returns the 1-indexed page of items, clipped to bounds. An
// out-of-range page yields an empty slice, never an error.
func paginate(items []*models.Registration, page, pageSize int) []*models.Registration {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []*models.Registration{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// countByStatus folds the full collection into per-status buckets, defaulting
// unseen statuses to 0 so the counts always sum to the collection total.
func countByStatus(items []*models.Registration) models.StatusCounts {
	counts := models.NewStatusCounts()
	for _, reg := range items {
		counts[reg.Status]++
	}
	return counts
}
