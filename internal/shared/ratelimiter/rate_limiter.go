// Package ratelimiter limits how often a client may trigger expensive operations.
package ratelimiter

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/creasty/defaults"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config sets the fixed-window budget. Limit 0 disables limiting.
type Config struct {
	Limit  int           `default:"30"` // requests allowed per window
	Window time.Duration `default:"1m"` // window length
}

// LoadConfig reads OPTIMISE_RATE_LIMIT and OPTIMISE_RATE_WINDOW.
func LoadConfig() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	if v, err := strconv.Atoi(os.Getenv("OPTIMISE_RATE_LIMIT")); err == nil && v >= 0 {
		cfg.Limit = v
	}
	if d, err := time.ParseDuration(os.Getenv("OPTIMISE_RATE_WINDOW")); err == nil && d > 0 {
		cfg.Window = d
	}
	return cfg
}

// Enabled reports whether limiting is switched on.
func (c Config) Enabled() bool {
	return c.Limit > 0
}

type window struct {
	count int
	start time.Time
}

// RateLimiter is an in-process fixed-window limiter keyed by caller.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	interval time.Duration
	windows  map[string]*window
	now      func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates an in-process limiter allowing limit calls per interval and key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow counts one call for key and reports whether it fits the current window.
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.interval {
		if len(rl.windows) > 1024 {
			rl.evictExpired(now)
		}
		w = &window{start: now}
		rl.windows[key] = w
	}
	w.count++
	return w.count <= rl.limit, nil
}

func (rl *RateLimiter) evictExpired(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
