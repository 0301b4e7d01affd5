package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"flock/internal/registration/models"
)

const summaryKeyPrefix = "flock:summary:"

// RedisSummary shares summaries across instances. Redis failures degrade to
// cache misses; the listing surfaces must keep working when the cache is down.
type RedisSummary struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisSummary creates a redis-backed summary cache with the given TTL.
func NewRedisSummary(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSummary {
	return &RedisSummary{client: client, ttl: ttl, logger: logger}
}

func (r *RedisSummary) Get(ctx context.Context, domain string) (models.StatusCounts, bool) {
	raw, err := r.client.Get(ctx, summaryKeyPrefix+domain).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.WarnContext(ctx, "summary cache read failed", "domain", domain, "error", err)
		}
		return nil, false
	}
	var counts models.StatusCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, false
	}
	return counts, true
}

func (r *RedisSummary) Set(ctx context.Context, domain string, counts models.StatusCounts) {
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, summaryKeyPrefix+domain, raw, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "summary cache write failed", "domain", domain, "error", err)
	}
}

func (r *RedisSummary) Invalidate(ctx context.Context, domain string) {
	if err := r.client.Del(ctx, summaryKeyPrefix+domain).Err(); err != nil {
		r.logger.WarnContext(ctx, "summary cache invalidation failed", "domain", domain, "error", err)
	}
}
