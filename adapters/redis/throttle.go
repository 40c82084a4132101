// Package redis implements the login throttle on Redis counters so the
// attempt budget holds across multiple server instances. Failures are
// counted along two dimensions: per normalized identifier and per client
// IP, so rotating target emails from one address does not evade the
// throttle.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/knowtasks/knowtasks/core"
)

// ipBudgetFactor scales the per-IP budget above the per-identifier one.
// One egress IP can front many legitimate users behind a shared NAT.
const ipBudgetFactor = 10

type Throttle struct {
	client      redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

var _ core.LoginThrottle = (*Throttle)(nil)

func NewThrottle(client redis.UniversalClient, maxAttempts int, window time.Duration) *Throttle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &Throttle{client: client, maxAttempts: maxAttempts, window: window}
}

func loginKey(identifier string) string {
	return "knowtasks:login_attempts:" + identifier
}

func ipKey(clientIP string) string {
	return "knowtasks:login_attempts_ip:" + clientIP
}

func (t *Throttle) Check(ctx context.Context, identifier, clientIP string) error {
	if err := t.checkKey(ctx, loginKey(identifier), t.maxAttempts); err != nil {
		return err
	}
	if clientIP != "" {
		return t.checkKey(ctx, ipKey(clientIP), t.maxAttempts*ipBudgetFactor)
	}
	return nil
}

func (t *Throttle) checkKey(ctx context.Context, key string, budget int) error {
	count, err := t.client.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("throttle check: %w", err)
	}
	if count >= int64(budget) {
		return core.ErrTooManyAttempts
	}
	return nil
}

// RecordFailure increments both counters, anchoring each window TTL at
// the first failure.
func (t *Throttle) RecordFailure(ctx context.Context, identifier, clientIP string) error {
	if err := t.incrKey(ctx, loginKey(identifier)); err != nil {
		return err
	}
	if clientIP != "" {
		return t.incrKey(ctx, ipKey(clientIP))
	}
	return nil
}

func (t *Throttle) incrKey(ctx context.Context, key string) error {
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle increment: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

func (t *Throttle) Reset(ctx context.Context, identifier string) error {
	if err := t.client.Del(ctx, loginKey(identifier)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}
