package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg is sent while running to refresh stats.
type tickMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case SettingsMsg:
		if m.state == StateRunning || m.engine.IsRunning() {
			m.log.Debug().Msg("settings reload ignored while running")
			return m, nil
		}
		m.settings = msg.Settings.Normalize()
		m.keys.SetHotkey(m.settings.Hotkey)
		m.Notice = "Settings reloaded from disk"
		return m, nil

	case tickMsg:
		if m.state != StateRunning {
			return m, nil
		}
		if !m.engine.IsRunning() {
			// timed run ended on its own
			m.state = StateForm
			m.Notice = "Run finished"
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		return handleKey(msg, m)
	}
	return m, nil
}

func handleKey(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Stop()
		m.persist()
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleHelp):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.CloseHelp) {
			m.showHelp = false
		}
		return m, nil
	}

	switch m.state {
	case StateForm:
		return formKey(msg, m)
	case StateRunning:
		if key.Matches(msg, m.keys.Stop) || key.Matches(msg, m.keys.Hotkey) {
			m.engine.Stop()
			m.state = StateForm
			m.ErrorMessage = ""
			return m, nil
		}
	}
	return m, nil
}

func formKey(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	m.Notice = ""
	switch {
	case key.Matches(msg, m.keys.Start), key.Matches(msg, m.keys.Hotkey):
		return m.start()
	case key.Matches(msg, m.keys.Up):
		if m.focused > 0 {
			m.focused--
		}
	case key.Matches(msg, m.keys.Down):
		if m.focused < fieldCount-1 {
			m.focused++
		}
	case key.Matches(msg, m.keys.Left):
		adjust(&m.settings, m.focused, -1)
	case key.Matches(msg, m.keys.Right):
		adjust(&m.settings, m.focused, 1)
	case key.Matches(msg, m.keys.Backspace):
		deleteDigit(&m.settings, m.focused)
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			typeDigit(&m.settings, m.focused, int64(s[0]-'0'))
		}
	}
	m.ErrorMessage = ""
	return m, nil
}

func (m Model) start() (Model, tea.Cmd) {
	m.persist()

	runFor, ok := m.runLength()
	if !ok {
		m.ErrorMessage = "Stop time " + m.stopAt.Format("15:04") + " has already passed"
		m.log.Warn().Time("stop_at", m.stopAt).Msg("start refused")
		return m, nil
	}
	m.runFor = runFor

	cfg := m.settings.IntervalConfig()
	if runFor > 0 {
		m.engine.StartFor(cfg, runFor)
	} else {
		m.engine.Start(cfg)
	}
	m.log.Info().Stringer("config", cfg).Dur("duration", runFor).Msg("start requested")

	m.state = StateRunning
	m.Notice = ""
	return m, tick()
}

// runLength is how long a run started now may last; 0 means until stopped.
// It reports false when the stop time has already passed.
func (m Model) runLength() (time.Duration, bool) {
	if m.stopAt.IsZero() {
		return m.duration, true
	}
	d := m.stopAt.Sub(m.now())
	return d, d > 0
}

// persist saves the form, reporting failures on screen.
func (m *Model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.settings); err != nil {
		m.log.Warn().Err(err).Msg("saving settings failed")
		m.ErrorMessage = "Could not save settings: " + err.Error()
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
