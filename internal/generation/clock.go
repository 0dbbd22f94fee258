package generation

import (
	"context"
	"time"
)

// Clock abstracts time for the poller so tests can run a full session
// without waiting on real timers.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever happens first.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
