package clicker

import (
	"sync/atomic"
	"time"
)

// Health represents the runtime health of the click backend.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthFailed:
		return "failing"
	default:
		return "unknown"
	}
}

// Stats is a snapshot of the current or most recent run.
type Stats struct {
	RunID    string
	Started  time.Time
	Cycles   int64
	Clicks   int64
	Failures int64
	Running  bool
}

type counters struct {
	cycles   atomic.Int64
	clicks   atomic.Int64
	failures atomic.Int64

	// consecutive failures since the last successful click
	failStreak atomic.Int64
}

func (c *counters) recordSuccess() {
	c.clicks.Add(1)
	c.failStreak.Store(0)
}

func (c *counters) recordFailure() int64 {
	c.failStreak.Add(1)
	return c.failures.Add(1)
}

func (c *counters) health() Health {
	if c.failStreak.Load() > 0 {
		return HealthFailed
	}
	if c.clicks.Load() == 0 {
		return HealthUnknown
	}
	return HealthOK
}
