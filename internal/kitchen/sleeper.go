package kitchen

import (
	"context"
	"time"
)

// Sleeper models a bounded wait. Phase timers go through this interface so
// tests can run the cook sequence at zero real-world delay.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper waits on the wall clock, honoring context cancellation
type RealSleeper struct{}

// Sleep blocks for d or until ctx is done
func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InstantSleeper completes every wait immediately. Used by tests and demo
// runs where simulated cooking should not take real time.
type InstantSleeper struct{}

// Sleep returns immediately unless the context is already cancelled
func (InstantSleeper) Sleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}
