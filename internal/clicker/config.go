package clicker

import (
	"fmt"
	"math"
	"time"
)

// Button selects which pointer button a click uses.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "left"
	case ButtonSecondary:
		return "right"
	case ButtonTertiary:
		return "middle"
	default:
		return "unknown"
	}
}

// ClickType selects how many clicks make up one cycle.
type ClickType int

const (
	ClickSingle ClickType = iota
	ClickDouble
	ClickTriple
)

func (c ClickType) String() string {
	switch c {
	case ClickSingle:
		return "single"
	case ClickDouble:
		return "double"
	case ClickTriple:
		return "triple"
	default:
		return "unknown"
	}
}

// Count returns the number of clicks in a burst of this type.
func (c ClickType) Count() int {
	switch c {
	case ClickDouble:
		return 2
	case ClickTriple:
		return 3
	default:
		return 1
	}
}

// Config describes the cadence, jitter and click shape of a run.
// Values are only produced by NewConfig and are always valid.
type Config struct {
	baseMs    int64
	jitterMs  int64
	jitter    bool
	button    Button
	clickType ClickType
}

// NewConfig builds a Config from raw interval components and selectors.
// Out-of-range input is clamped rather than rejected:
//   - hours, minutes, seconds and millis are clamped to [0,24], [0,59], [0,59], [0,999]
//   - a non-positive interval becomes 1ms
//   - the jitter bound is made non-negative and kept strictly below the interval
//   - jitter is only enabled when requested and the bound is non-zero
func NewConfig(hours, minutes, seconds, millis, jitterMs int64, jitter bool, button, clickType int) Config {
	hours = clamp(hours, 0, 24)
	minutes = clamp(minutes, 0, 59)
	seconds = clamp(seconds, 0, 59)
	millis = clamp(millis, 0, 999)

	base := hours*3_600_000 + minutes*60_000 + seconds*1_000 + millis
	if base <= 0 {
		base = 1
	}

	bound := jitterMs
	if bound < 0 {
		if bound == math.MinInt64 {
			bound = math.MaxInt64
		} else {
			bound = -bound
		}
	}
	if bound >= base {
		bound = base - 1
	}

	return Config{
		baseMs:    base,
		jitterMs:  bound,
		jitter:    jitter && bound > 0,
		button:    Button(clamp(int64(button), 0, 2)),
		clickType: ClickType(clamp(int64(clickType), 0, 2)),
	}
}

// normalized returns c, or the clamped default when c is the zero value.
func (c Config) normalized() Config {
	if c.baseMs <= 0 {
		return NewConfig(0, 0, 0, 0, 0, false, 0, 0)
	}
	return c
}

func (c Config) BaseIntervalMs() int64 { return c.baseMs }

func (c Config) BaseInterval() time.Duration { return time.Duration(c.baseMs) * time.Millisecond }

func (c Config) JitterBoundMs() int64 { return c.jitterMs }

func (c Config) JitterEnabled() bool { return c.jitter }

func (c Config) Button() Button { return c.button }

func (c Config) ClickType() ClickType { return c.clickType }

// BurstCount is the number of clicks performed per cycle.
func (c Config) BurstCount() int { return c.clickType.Count() }

func (c Config) String() string {
	s := fmt.Sprintf("every %v, %s %s", c.BaseInterval(), c.clickType, c.button)
	if c.jitter {
		s += fmt.Sprintf(", ±%dms jitter", c.jitterMs)
	}
	return s
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
