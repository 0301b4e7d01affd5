package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"flock/internal/domain"
	"flock/internal/notify"
	"flock/internal/registration/cache"
	"flock/internal/registration/models"
	"flock/internal/registration/store"
)

type ListSuite struct {
	suite.Suite
	store   *store.Memory
	service *Service
	ctx     context.Context
}

func (s *ListSuite) SetupTest() {
	s.store = store.NewMemory()
	s.store.AddSubject("spring-retreat", "Spring Retreat")
	s.service = New(domain.Events, s.store, notify.NewRecorder())
	s.ctx = context.Background()
}

func TestListSuite(t *testing.T) {
	suite.Run(t, new(ListSuite))
}

// seed creates n registrations in deterministic creation order and confirms
// the first confirmed and declines the next declined of them.
func (s *ListSuite) seed(n, confirmed, declined int) []*models.Registration {
	s.Require().LessOrEqual(confirmed+declined, n)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	regs := make([]*models.Registration, 0, n)
	for i := 0; i < n; i++ {
		reg, err := models.NewRegistration("spring-retreat",
			models.Contact{Email: fmt.Sprintf("person%03d@example.com", i)},
			nil, base.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(err)

		created, err := s.store.Create(s.ctx, reg)
		s.Require().NoError(err)
		regs = append(regs, created)
	}
	for i := 0; i < confirmed; i++ {
		_, err := s.store.UpdateStatus(s.ctx, regs[i].ID, models.StatusConfirmed)
		s.Require().NoError(err)
	}
	for i := confirmed; i < confirmed+declined; i++ {
		_, err := s.store.UpdateStatus(s.ctx, regs[i].ID, models.StatusDeclined)
		s.Require().NoError(err)
	}
	return regs
}

// TestPagination verifies 1-indexed pages with clipped bounds over a
// collection of 25.
func (s *ListSuite) TestPagination() {
	regs := s.seed(25, 0, 0)

	s.Run("first page holds the page size", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 1, 10)
		s.Require().NoError(err)
		s.Len(page.Items, 10)
		s.Equal(25, page.Total)
		s.Equal(regs[0].ID, page.Items[0].ID)
	})

	s.Run("last page is clipped", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 3, 10)
		s.Require().NoError(err)
		s.Len(page.Items, 5)
		s.Equal(25, page.Total)
		s.Equal(regs[20].ID, page.Items[0].ID)
	})

	s.Run("out-of-range page yields empty items, full total", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 10, 10)
		s.Require().NoError(err)
		s.Empty(page.Items)
		s.Equal(25, page.Total)
	})

	s.Run("non-positive page clamps to the first", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 0, 10)
		s.Require().NoError(err)
		s.Len(page.Items, 10)
		s.Equal(regs[0].ID, page.Items[0].ID)
	})

	s.Run("non-positive page size falls back to the default", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 1, 0)
		s.Require().NoError(err)
		s.Len(page.Items, 20)
	})

	s.Run("oversized page size is capped", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 1, MaxPageSize+1000)
		s.Require().NoError(err)
		s.Len(page.Items, 25)
	})
}

// TestStatusCounts verifies the aggregation covers the full filtered
// collection and always sums to the total.
func (s *ListSuite) TestStatusCounts() {
	s.seed(25, 7, 3)

	s.Run("counts cover the whole collection, not the page", func() {
		page, err := s.service.List(s.ctx, models.Criteria{}, 2, 10)
		s.Require().NoError(err)

		s.Equal(7, page.StatusCounts[models.StatusConfirmed])
		s.Equal(3, page.StatusCounts[models.StatusDeclined])
		s.Equal(15, page.StatusCounts[models.StatusPending])
		s.Equal(page.Total, page.StatusCounts.Total())
	})

	s.Run("filtered counts recompute over the filtered set", func() {
		confirmed := models.StatusConfirmed
		page, err := s.service.List(s.ctx, models.Criteria{Status: &confirmed}, 1, 10)
		s.Require().NoError(err)

		s.Equal(7, page.Total)
		s.Equal(7, page.StatusCounts[models.StatusConfirmed])
		s.Equal(0, page.StatusCounts[models.StatusPending])
		s.Equal(0, page.StatusCounts[models.StatusDeclined])
		s.Equal(page.Total, page.StatusCounts.Total())
	})

	s.Run("empty collection still reports all statuses at zero", func() {
		nobody := models.Criteria{Email: "nobody"}
		page, err := s.service.List(s.ctx, nobody, 1, 10)
		s.Require().NoError(err)

		s.Equal(0, page.Total)
		s.Len(page.StatusCounts, 3)
		s.Equal(0, page.StatusCounts.Total())
	})
}

// TestSummary verifies the cached unfiltered aggregation and its
// invalidation on mutation.
func (s *ListSuite) TestSummary() {
	summaries := cache.NewMemorySummary(time.Minute)
	s.service = New(domain.Events, s.store, notify.NewRecorder(),
		WithSummaryCache(summaries))
	regs := s.seed(5, 2, 1)

	counts, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, counts[models.StatusConfirmed])
	s.Equal(1, counts[models.StatusDeclined])
	s.Equal(2, counts[models.StatusPending])

	s.Run("serves from cache until invalidated", func() {
		cached, ok := summaries.Get(s.ctx, "events")
		s.Require().True(ok)
		s.Equal(counts, cached)
	})

	s.Run("mutation invalidates and the next read recomputes", func() {
		_, err := s.service.ApplyTransition(s.ctx, regs[4].ID, models.StatusConfirmed)
		s.Require().NoError(err)

		_, ok := summaries.Get(s.ctx, "events")
		s.False(ok, "transition must drop the cached summary")

		fresh, err := s.service.Summary(s.ctx)
		s.Require().NoError(err)
		s.Equal(3, fresh[models.StatusConfirmed])
		s.Equal(1, fresh[models.StatusPending])
	})
}
