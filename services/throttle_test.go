package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/knowtasks/knowtasks/core"
)

// Requirement: the throttle admits attempts until the budget is exhausted,
// then rejects with ErrTooManyAttempts until the window expires or the
// counter is reset.
func TestMemoryThrottle(t *testing.T) {
	ctx := context.Background()

	t.Run("admits under budget", func(t *testing.T) {
		throttle := NewMemoryThrottle(3, time.Minute)
		for i := 0; i < 2; i++ {
			if err := throttle.RecordFailure(ctx, "m@x.com", ""); err != nil {
				t.Fatalf("RecordFailure() error = %v", err)
			}
		}
		if err := throttle.Check(ctx, "m@x.com", ""); err != nil {
			t.Errorf("Check() under budget error = %v", err)
		}
	})

	t.Run("rejects at budget", func(t *testing.T) {
		throttle := NewMemoryThrottle(3, time.Minute)
		for i := 0; i < 3; i++ {
			_ = throttle.RecordFailure(ctx, "m@x.com", "")
		}
		if err := throttle.Check(ctx, "m@x.com", ""); !errors.Is(err, core.ErrTooManyAttempts) {
			t.Errorf("Check() at budget error = %v, want ErrTooManyAttempts", err)
		}
		// Other identifiers are unaffected.
		if err := throttle.Check(ctx, "other@x.com", ""); err != nil {
			t.Errorf("Check() for other identifier error = %v", err)
		}
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		throttle := NewMemoryThrottle(3, time.Minute)
		for i := 0; i < 3; i++ {
			_ = throttle.RecordFailure(ctx, "m@x.com", "")
		}
		if err := throttle.Reset(ctx, "m@x.com"); err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
		if err := throttle.Check(ctx, "m@x.com", ""); err != nil {
			t.Errorf("Check() after reset error = %v", err)
		}
	})

	t.Run("window expiry clears the counter", func(t *testing.T) {
		throttle := NewMemoryThrottle(3, 20*time.Millisecond)
		for i := 0; i < 3; i++ {
			_ = throttle.RecordFailure(ctx, "m@x.com", "")
		}
		time.Sleep(40 * time.Millisecond)
		if err := throttle.Check(ctx, "m@x.com", ""); err != nil {
			t.Errorf("Check() after window error = %v", err)
		}
	})
}
