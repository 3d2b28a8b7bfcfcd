//go:build linux

package linux

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Button identifies a mouse button independent of backend numbering.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// MouseClicker presses and releases a mouse button.
type MouseClicker interface {
	Press(b Button) error
	Name() string
	Close() error
}

// UinputClicker clicks through the uinput virtual mouse.
type UinputClicker struct {
	Dev *UinputDevice
}

func (u *UinputClicker) Press(b Button) error {
	switch b {
	case ButtonRight:
		return u.Dev.Press(btnRight)
	case ButtonMiddle:
		return u.Dev.Press(btnMiddle)
	default:
		return u.Dev.Press(btnLeft)
	}
}

func (u *UinputClicker) Name() string { return "uinput" }

func (u *UinputClicker) Close() error { return u.Dev.Close() }

// CommandClicker clicks by running a command-line tool once per click.
type CommandClicker struct {
	Cmd     string
	Args    []string
	Buttons map[Button]string
}

// NewXdotoolClicker uses X11 button numbers: 1 left, 2 middle, 3 right.
func NewXdotoolClicker() *CommandClicker {
	return &CommandClicker{
		Cmd:     "xdotool",
		Args:    []string{"click"},
		Buttons: map[Button]string{ButtonLeft: "1", ButtonMiddle: "2", ButtonRight: "3"},
	}
}

// NewYdotoolClicker uses ydotool's button codes with the down|up bits set.
func NewYdotoolClicker() *CommandClicker {
	return &CommandClicker{
		Cmd:     "ydotool",
		Args:    []string{"click"},
		Buttons: map[Button]string{ButtonLeft: "0xC0", ButtonRight: "0xC1", ButtonMiddle: "0xC2"},
	}
}

func (c *CommandClicker) Press(b Button) error {
	code, ok := c.Buttons[b]
	if !ok {
		return fmt.Errorf("%s: unsupported button %d", c.Cmd, b)
	}
	args := append(append([]string(nil), c.Args...), code)
	if out, err := runVerbose(c.Cmd, args...); err != nil {
		return fmt.Errorf("%s %s: %w (output: %q)", c.Cmd, strings.Join(args, " "), err, out)
	}
	return nil
}

func (c *CommandClicker) Name() string { return c.Cmd }

func (c *CommandClicker) Close() error { return nil }

// SelectClicker picks the best available backend: uinput first, then the
// tool matching the display server. The returned error carries install hints.
func SelectClicker(caps Capabilities) (MouseClicker, error) {
	var uinputErr error
	if caps.UinputAccess {
		dev, err := OpenUinput()
		if err == nil {
			return &UinputClicker{Dev: dev}, nil
		}
		uinputErr = err
	}

	switch {
	case caps.DisplayServer != DisplayServerWayland && caps.XdotoolAvailable:
		return NewXdotoolClicker(), nil
	case caps.YdotoolAvailable:
		return NewYdotoolClicker(), nil
	}

	if uinputErr != nil && caps.UinputError == "" {
		caps.UinputError = uinputErr.Error()
	}
	return nil, fmt.Errorf("%s", FormatDependencyMessages(CheckMissingDependencies(caps), caps))
}

// DoubleClickTime reads the desktop's double-click interval. It returns 0 if
// the desktop does not expose one.
func DoubleClickTime(desktop string) time.Duration {
	var out string
	var err error
	switch desktop {
	case DesktopKDE:
		if !hasCommand("kreadconfig5") {
			return 0
		}
		out, err = runVerbose("kreadconfig5", "--file", "kdeglobals", "--group", "KDE", "--key", "DoubleClickInterval")
	default:
		if !hasCommand("gsettings") {
			return 0
		}
		out, err = runVerbose("gsettings", "get", "org.gnome.desktop.peripherals.mouse", "double-click")
	}
	if err != nil {
		return 0
	}
	return parseMillis(out)
}

// parseMillis accepts plain integers and GVariant output such as "int32 400".
func parseMillis(out string) time.Duration {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0
	}
	ms, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
