// Package platform selects the operating system's click backend.
package platform

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// ErrUnsupported is returned when no click backend exists for this system.
var ErrUnsupported = errors.New("click simulation unsupported on this platform")

// Clicker is a click backend. Close releases any device or helper it holds.
type Clicker interface {
	clicker.Clicker
	io.Closer
	Name() string
}

// Info describes what the platform offers for clicking.
type Info struct {
	OS            string
	DisplayServer string
	Desktop       string
	Tools         []string
	UinputAccess  bool

	// Notes is a user-facing hint when something is missing
	Notes string
}

// Summary is a one-line description for the TUI footer.
func (i Info) Summary() string {
	parts := []string{i.OS}
	if i.DisplayServer != "" {
		parts = append(parts, i.DisplayServer)
	}
	if i.UinputAccess {
		parts = append(parts, "uinput")
	}
	parts = append(parts, i.Tools...)
	return strings.Join(parts, " · ")
}

// LogDiagnostics writes the startup diagnostics block.
func LogDiagnostics(log zerolog.Logger, info Info) {
	ev := log.Info().
		Str("os", info.OS).
		Strs("tools", info.Tools).
		Bool("uinput", info.UinputAccess)
	if info.DisplayServer != "" {
		ev = ev.Str("display_server", info.DisplayServer)
	}
	if info.Desktop != "" {
		ev = ev.Str("desktop", info.Desktop)
	}
	ev.Msg("platform diagnostics")
	if info.Notes != "" {
		log.Warn().Msg(info.Notes)
	}
}
