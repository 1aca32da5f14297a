package ratelimiter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// noExpiry is what TTL reports for a key that exists without an expiry.
const noExpiry = time.Duration(-1)

// RedisLimiter is a fixed-window limiter shared by every instance using the same Redis.
type RedisLimiter struct {
	rdb       *redis.Client
	limit     int64
	interval  time.Duration
	namespace string
}

var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a Redis-backed limiter. An empty namespace becomes "ratelimit".
func NewRedisLimiter(rdb *redis.Client, limit int, interval time.Duration, namespace string) *RedisLimiter {
	if namespace == "" {
		namespace = "ratelimit"
	}
	return &RedisLimiter{rdb: rdb, limit: int64(limit), interval: interval, namespace: namespace}
}

// Allow increments the caller's counter; the first hit of a window sets its expiry.
// A rejected caller whose key has no expiry, because that first EXPIRE failed,
// gets the expiry set again so the key cannot block it forever.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.interval).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
		return n <= l.limit, nil
	}
	if n <= l.limit {
		return true, nil
	}
	ttl, err := l.rdb.TTL(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl == noExpiry {
		if err := l.rdb.Expire(ctx, k, l.interval).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return false, nil
}

func (l *RedisLimiter) key(caller string) string {
	return fmt.Sprintf("%s:%s", l.namespace, safe(caller))
}

// safe escapes characters that are problematic for Redis keys (IPv6 colons, spaces).
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
