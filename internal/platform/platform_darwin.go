//go:build darwin

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// darwinClicker uses cliclick when installed and falls back to posting
// CoreGraphics events through osascript. Both need Accessibility permission.
type darwinClicker struct {
	cliclick bool
}

func (c darwinClicker) Click(b clicker.Button) error {
	if c.cliclick && b != clicker.ButtonTertiary {
		cmd := "c:."
		if b == clicker.ButtonSecondary {
			cmd = "rc:."
		}
		out, err := runWithTimeout("cliclick", cmd)
		if err != nil {
			return fmt.Errorf("cliclick %s: %w (output: %q)", cmd, err, out)
		}
		return nil
	}

	out, err := runWithTimeout("osascript", "-l", "JavaScript", "-e", clickScript(b))
	if err != nil {
		return fmt.Errorf("osascript click failed: %w (output: %q). Enable Accessibility for this terminal in System Settings, Privacy and Security, Accessibility", err, out)
	}
	return nil
}

func (c darwinClicker) Name() string {
	if c.cliclick {
		return "cliclick"
	}
	return "osascript"
}

func (darwinClicker) Close() error { return nil }

func clickScript(b clicker.Button) string {
	down, up, button := "kCGEventLeftMouseDown", "kCGEventLeftMouseUp", "kCGMouseButtonLeft"
	switch b {
	case clicker.ButtonSecondary:
		down, up, button = "kCGEventRightMouseDown", "kCGEventRightMouseUp", "kCGMouseButtonRight"
	case clicker.ButtonTertiary:
		down, up, button = "kCGEventOtherMouseDown", "kCGEventOtherMouseUp", "kCGMouseButtonCenter"
	}
	return fmt.Sprintf(`
ObjC.import('CoreGraphics');
var p = $.CGEventGetLocation($.CGEventCreate(null));
$.CGEventPost($.kCGHIDEventTap, $.CGEventCreateMouseEvent(null, $.%[1]s, p, $.%[3]s));
$.CGEventPost($.kCGHIDEventTap, $.CGEventCreateMouseEvent(null, $.%[2]s, p, $.%[3]s));
`, down, up, button)
}

func runWithTimeout(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), scriptExecutionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return string(out), fmt.Errorf("%s timed out after %s", name, scriptExecutionTimeout)
	}
	return strings.TrimSpace(string(out)), err
}

// NewClicker picks cliclick or osascript.
func NewClicker(log zerolog.Logger) (Clicker, error) {
	c := darwinClicker{cliclick: hasCommand("cliclick")}
	if !c.cliclick && !hasCommand("osascript") {
		return nil, fmt.Errorf("%w: neither cliclick nor osascript found", ErrUnsupported)
	}
	log.Info().Str("component", "platform").Str("backend", c.Name()).Msg("click backend selected")
	return c, nil
}

func Capabilities() Info {
	info := Info{OS: "darwin"}
	for _, tool := range []string{"cliclick", "osascript"} {
		if hasCommand(tool) {
			info.Tools = append(info.Tools, tool)
		}
	}
	if len(info.Tools) == 0 {
		info.Notes = "install cliclick: brew install cliclick"
	}
	return info
}

// DoubleClickTime reads com.apple.mouse.doubleClickThreshold (seconds).
func DoubleClickTime() time.Duration {
	out, err := runWithTimeout("defaults", "read", "-g", "com.apple.mouse.doubleClickThreshold")
	if err != nil {
		return 0
	}
	secs, err := strconv.ParseFloat(out, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func NewExecutionHint() clicker.ExecutionHint { return nil }
