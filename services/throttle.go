package services

import (
	"context"
	"time"

	"github.com/knowtasks/knowtasks/cache"
	"github.com/knowtasks/knowtasks/core"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// MemoryThrottle bounds failed login attempts per identifier using an
// in-process fixed-window counter. Suitable for single-instance
// deployments; multi-instance deployments should use the Redis variant,
// which also enforces a per-IP budget. The clientIP argument is ignored
// here.
type MemoryThrottle struct {
	counters    *cache.CounterCache
	maxAttempts int
}

var _ core.LoginThrottle = (*MemoryThrottle)(nil)

func NewMemoryThrottle(maxAttempts int, window time.Duration) *MemoryThrottle {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &MemoryThrottle{
		counters:    cache.NewCounterCache(window, 10000),
		maxAttempts: maxAttempts,
	}
}

func (t *MemoryThrottle) Check(_ context.Context, identifier, _ string) error {
	if t.counters.Get(identifier) >= t.maxAttempts {
		return core.ErrTooManyAttempts
	}
	return nil
}

func (t *MemoryThrottle) RecordFailure(_ context.Context, identifier, _ string) error {
	t.counters.Increment(identifier)
	return nil
}

func (t *MemoryThrottle) Reset(_ context.Context, identifier string) error {
	t.counters.Delete(identifier)
	return nil
}
