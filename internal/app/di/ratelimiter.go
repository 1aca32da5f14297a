package di

import (
	"github.com/redis/go-redis/v9"

	"mpt_backend/internal/shared/ratelimiter"
)

// NewOptimiseLimiter creates the limiter guarding the optimisation endpoints.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process limiter. It returns nil when limiting is disabled.
func NewOptimiseLimiter(rdb *redis.Client, cfg ratelimiter.Config) ratelimiter.Limiter {
	if !cfg.Enabled() {
		return nil
	}
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, cfg.Limit, cfg.Window, "optimise")
	}
	return ratelimiter.NewRateLimiter(cfg.Limit, cfg.Window)
}
