// Package clicker implements the click scheduling engine: interval
// configuration, the jitter model and the cancellable background loop that
// drives a Clicker.
package clicker

import "time"

// Clicker performs a single press and release of a pointer button.
// Implementations are supplied by the platform layer.
type Clicker interface {
	Click(button Button) error
}

// ClickerFunc adapts a function to the Clicker interface.
type ClickerFunc func(button Button) error

func (f ClickerFunc) Click(button Button) error { return f(button) }

// ExecutionHint tunes the goroutine that runs the schedule, for example by
// pinning it to an OS thread and raising that thread's priority. Apply is
// called on the loop goroutine before the first cycle; release is called on
// the same goroutine when the run exits.
type ExecutionHint interface {
	Apply() (release func(), err error)
}

// Fallback burst spacing when the platform double-click time is unknown.
const DefaultBurstSpacing = 50 * time.Millisecond

// BurstSpacing derives the pause between clicks of one burst from the
// platform double-click threshold, leaving headroom so the clicks still
// register as a double or triple click.
func BurstSpacing(doubleClick time.Duration) time.Duration {
	if doubleClick <= 0 {
		return DefaultBurstSpacing
	}
	return doubleClick / 5
}
