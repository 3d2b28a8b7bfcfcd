//go:build !darwin && !windows && !linux

package platform

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// NewClicker always fails on unsupported platforms.
func NewClicker(log zerolog.Logger) (Clicker, error) {
	return nil, ErrUnsupported
}

func Capabilities() Info {
	return Info{OS: runtime.GOOS, Notes: ErrUnsupported.Error()}
}

func DoubleClickTime() time.Duration { return 0 }

func NewExecutionHint() clicker.ExecutionHint { return nil }
