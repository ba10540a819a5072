// Package clock abstracts time so that retry loops can be tested without real delays.
package clock

import (
	"context"
	"time"
)

// Clock is an interface that abstracts the functionality for measuring time.
type Clock interface {
	// Sleep pauses the current goroutine for at least the duration d, or until
	// ctx is cancelled, whichever comes first. A negative or zero duration
	// causes Sleep to return immediately. Returns the context error when the
	// wait was cut short by cancellation.
	Sleep(ctx context.Context, d time.Duration) error
	// Now returns the current local time.
	Now() time.Time
}

type clock struct{}

// New creates a new instance of Clock.
func New() Clock {
	return clock{}
}

func (clock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (clock) Now() time.Time {
	return time.Now()
}
