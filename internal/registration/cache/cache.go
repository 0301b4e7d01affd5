// Package cache holds short-lived status-count summaries for the listing
// surfaces. Summaries are pull-based: mutations invalidate, callers re-query.
package cache

import (
	"context"

	"flock/internal/registration/models"
)

// Summary caches per-domain status counts. Implementations are read-through
// friendly: a miss simply means the caller recomputes from the store.
type Summary interface {
	Get(ctx context.Context, domain string) (models.StatusCounts, bool)
	Set(ctx context.Context, domain string, counts models.StatusCounts)
	Invalidate(ctx context.Context, domain string)
}
