package ui

import (
	"time"

	"github.com/stigoleg/autoclicker/internal/clicker"
	"github.com/stigoleg/autoclicker/internal/config"
)

// Runner is the part of the click engine the TUI drives.
type Runner interface {
	Start(cfg clicker.Config)
	StartFor(cfg clicker.Config, d time.Duration)
	Stop()
	IsRunning() bool
	Stats() clicker.Stats
	Health() clicker.Health
	TimeRemaining() time.Duration
}

// SettingsMsg carries settings re-read from disk. It is applied only while
// no run is active.
type SettingsMsg struct {
	Settings config.Settings
}
