package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/stigoleg/autoclicker/internal/config"
)

// KeyMap defines key bindings for various UI states and common actions.
type KeyMap struct {
	// Common
	Quit       key.Binding
	ToggleHelp key.Binding
	CloseHelp  key.Binding
	Hotkey     key.Binding

	// Form
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Backspace key.Binding
	Start     key.Binding

	// Running
	Stop key.Binding
}

// DefaultKeys returns the key bindings with hotkey as the start/stop toggle.
func DefaultKeys(hotkey string) KeyMap {
	k := KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		CloseHelp: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete digit"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("enter", "s", "esc"),
			key.WithHelp("enter/s", "stop"),
		),
	}
	k.SetHotkey(hotkey)
	return k
}

// SetHotkey rebinds the start/stop toggle.
func (k *KeyMap) SetHotkey(hotkey string) {
	hotkey = strings.ToLower(strings.TrimSpace(hotkey))
	if hotkey == "" {
		hotkey = config.DefaultHotkey
	}
	k.Hotkey = key.NewBinding(
		key.WithKeys(hotkey),
		key.WithHelp(hotkey, "start/stop"),
	)
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	return help.New()
}

// stateKeyMap adapts bindings to the current UI state for contextual help.
type stateKeyMap struct {
	keys  KeyMap
	state State
}

// ForState returns a contextual key map implementing help.KeyMap for the given state.
func (k KeyMap) ForState(s State) help.KeyMap {
	return stateKeyMap{keys: k, state: s}
}

func (s stateKeyMap) ShortHelp() []key.Binding {
	switch s.state {
	case StateForm:
		return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Right, s.keys.Start, s.keys.Hotkey, s.keys.ToggleHelp, s.keys.Quit}
	case StateRunning:
		return []key.Binding{s.keys.Stop, s.keys.Hotkey, s.keys.ToggleHelp, s.keys.Quit}
	default:
		return []key.Binding{s.keys.CloseHelp, s.keys.Quit}
	}
}

func (s stateKeyMap) FullHelp() [][]key.Binding {
	switch s.state {
	case StateForm:
		return [][]key.Binding{
			{s.keys.Up, s.keys.Down, s.keys.Left, s.keys.Right, s.keys.Backspace},
			{s.keys.Start, s.keys.Hotkey, s.keys.ToggleHelp, s.keys.Quit},
		}
	case StateRunning:
		return [][]key.Binding{{s.keys.Stop, s.keys.Hotkey}, {s.keys.ToggleHelp, s.keys.Quit}}
	default:
		return [][]key.Binding{{s.keys.CloseHelp, s.keys.Quit}}
	}
}
