package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"flock/internal/registration/models"
)

// MemorySummary caches summaries in-process. Used when redis is not
// configured; correctness only depends on the TTL and on mutations calling
// Invalidate, both of which hold within a single process.
type MemorySummary struct {
	c *gocache.Cache
}

// NewMemorySummary creates an in-process summary cache with the given TTL.
func NewMemorySummary(ttl time.Duration) *MemorySummary {
	return &MemorySummary{c: gocache.New(ttl, 2*ttl)}
}

func (m *MemorySummary) Get(_ context.Context, domain string) (models.StatusCounts, bool) {
	v, ok := m.c.Get(domain)
	if !ok {
		return nil, false
	}
	counts, ok := v.(models.StatusCounts)
	return counts, ok
}

func (m *MemorySummary) Set(_ context.Context, domain string, counts models.StatusCounts) {
	m.c.SetDefault(domain, counts)
}

func (m *MemorySummary) Invalidate(_ context.Context, domain string) {
	m.c.Delete(domain)
}
