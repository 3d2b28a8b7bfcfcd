//go:build linux

package platform

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/clicker"
	"github.com/stigoleg/autoclicker/internal/platform/linux"
)

type linuxClicker struct {
	backend linux.MouseClicker
}

func (c *linuxClicker) Click(b clicker.Button) error {
	return c.backend.Press(toLinuxButton(b))
}

func (c *linuxClicker) Name() string { return c.backend.Name() }

func (c *linuxClicker) Close() error { return c.backend.Close() }

func toLinuxButton(b clicker.Button) linux.Button {
	switch b {
	case clicker.ButtonSecondary:
		return linux.ButtonRight
	case clicker.ButtonTertiary:
		return linux.ButtonMiddle
	default:
		return linux.ButtonLeft
	}
}

// NewClicker opens the best available Linux backend.
func NewClicker(log zerolog.Logger) (Clicker, error) {
	log = log.With().Str("component", "platform").Logger()
	caps := linux.DetectCapabilities()

	backend, err := linux.SelectClicker(caps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	log.Info().Str("backend", backend.Name()).Msg("click backend selected")
	return &linuxClicker{backend: backend}, nil
}

// Capabilities reports the display server, click tools and uinput access.
func Capabilities() Info {
	caps := linux.DetectCapabilities()
	info := Info{
		OS:            "linux",
		DisplayServer: caps.DisplayServer,
		Desktop:       caps.DesktopEnvironment,
		UinputAccess:  caps.UinputAccess,
	}
	if caps.XdotoolAvailable {
		info.Tools = append(info.Tools, "xdotool")
	}
	if caps.YdotoolAvailable {
		info.Tools = append(info.Tools, "ydotool")
	}
	if !caps.UinputAccess {
		info.Notes = caps.UinputError
	}
	return info
}

// DoubleClickTime returns the desktop double-click threshold, or 0.
func DoubleClickTime() time.Duration {
	return linux.DoubleClickTime(linux.DetectDesktopEnvironment())
}

// NewExecutionHint lowers the click loop thread's nice value.
func NewExecutionHint() clicker.ExecutionHint {
	return linux.ThreadPriority{Nice: loopNice}
}
