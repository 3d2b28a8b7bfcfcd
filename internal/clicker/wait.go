package clicker

import (
	"context"
	"time"
)

// waitUntil blocks until deadline or until ctx is cancelled. It reports
// whether the deadline was reached with ctx still live; a cancellation that
// races the timer always wins.
func waitUntil(ctx context.Context, deadline time.Time) bool {
	if ctx.Err() != nil {
		return false
	}

	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return ctx.Err() == nil
	}
}
