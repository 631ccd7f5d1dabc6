package delay

import (
	"context"
	"time"
)

// Sleeper pauses between retry attempts. Implementations must return
// early with the context's error when the context is cancelled, so a
// retry loop never outlives its caller.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper implements Sleeper using wall-clock timers
type RealSleeper struct{}

// New creates a new RealSleeper
func New() *RealSleeper {
	return &RealSleeper{}
}

// Sleep blocks for d or until ctx is done, whichever comes first
func (s *RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
