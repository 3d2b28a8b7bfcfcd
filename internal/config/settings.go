package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// Button and click type names as stored in the settings file, indexed by
// their clicker values.
var (
	ButtonNames    = []string{"left", "right", "middle"}
	ClickTypeNames = []string{"single", "double", "triple"}
)

// DefaultHotkey toggles clicking when no other key is configured.
const DefaultHotkey = "f7"

// Settings are the persisted form values.
type Settings struct {
	Hours     int64  `yaml:"hours"`
	Minutes   int64  `yaml:"minutes"`
	Seconds   int64  `yaml:"seconds"`
	Millis    int64  `yaml:"millis"`
	JitterMs  int64  `yaml:"jitter_ms"`
	Jitter    bool   `yaml:"jitter"`
	Button    string `yaml:"button"`
	ClickType string `yaml:"click_type"`
	Hotkey    string `yaml:"hotkey"`
}

func DefaultSettings() Settings {
	return Settings{
		Millis:    100,
		JitterMs:  40,
		Jitter:    true,
		Button:    ButtonNames[0],
		ClickType: ClickTypeNames[0],
		Hotkey:    DefaultHotkey,
	}
}

// DefaultSettingsPath is settings.yaml under the user config directory.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "autoclicker", "settings.yaml"), nil
}

func indexOf(names []string, name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// IntervalConfig converts the settings into a clamped schedule configuration.
func (s Settings) IntervalConfig() clicker.Config {
	return clicker.NewConfig(s.Hours, s.Minutes, s.Seconds, s.Millis, s.JitterMs, s.Jitter,
		indexOf(ButtonNames, s.Button), indexOf(ClickTypeNames, s.ClickType))
}

// Normalize canonicalizes names and replaces unknown choices with defaults.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if i := indexOf(ButtonNames, s.Button); i >= 0 {
		s.Button = ButtonNames[i]
	} else {
		s.Button = def.Button
	}
	if i := indexOf(ClickTypeNames, s.ClickType); i >= 0 {
		s.ClickType = ClickTypeNames[i]
	} else {
		s.ClickType = def.ClickType
	}
	s.Hotkey = strings.ToLower(strings.TrimSpace(s.Hotkey))
	if s.Hotkey == "" {
		s.Hotkey = def.Hotkey
	}
	return s
}

// LoadSettings reads path. A missing file yields the defaults; fields absent
// from the file keep their default values.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return DefaultSettings(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s.Normalize(), nil
}

// SaveSettings writes s to path through a temporary file and rename so a
// reader never observes a partial file.
func SaveSettings(path string, s Settings) error {
	b, err := yaml.Marshal(s.Normalize())
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
