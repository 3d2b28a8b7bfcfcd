package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/config"
)

// refreshInterval is how often the running view re-reads engine stats.
const refreshInterval = 250 * time.Millisecond

// Model holds the current state of the UI: the form values, the engine it
// drives and what is on screen.
type Model struct {
	state    State
	showHelp bool
	focused  field
	settings config.Settings

	engine   Runner
	duration time.Duration
	stopAt   time.Time
	runFor   time.Duration
	now      func() time.Time
	save     func(config.Settings) error
	log      zerolog.Logger

	keys KeyMap
	help help.Model

	version      string
	platform     string
	ErrorMessage string
	Notice       string
}

// Option configures a Model.
type Option func(*Model)

// WithDuration makes every run stop itself after d.
func WithDuration(d time.Duration) Option {
	return func(m *Model) { m.duration = d }
}

// WithStopAt makes every run stop itself at the wall-clock time t. Starting
// after t is refused.
func WithStopAt(t time.Time) Option {
	return func(m *Model) { m.stopAt = t }
}

// WithSaver persists the form whenever a run starts and on quit.
func WithSaver(save func(config.Settings) error) Option {
	return func(m *Model) { m.save = save }
}

func WithVersion(v string) Option {
	return func(m *Model) { m.version = v }
}

// WithPlatform sets the backend summary shown in the footer.
func WithPlatform(summary string) Option {
	return func(m *Model) { m.platform = summary }
}

func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) { m.log = log.With().Str("component", "ui").Logger() }
}

// NewModel returns the form model for engine, pre-filled with settings.
func NewModel(engine Runner, settings config.Settings, opts ...Option) Model {
	settings = settings.Normalize()
	m := Model{
		state:    StateForm,
		settings: settings,
		engine:   engine,
		log:      zerolog.Nop(),
		now:      time.Now,
		keys:     DefaultKeys(settings.Hotkey),
		help:     NewHelpModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewRunningModel is like NewModel but starts clicking immediately.
func NewRunningModel(engine Runner, settings config.Settings, opts ...Option) Model {
	m := NewModel(engine, settings, opts...)
	m, _ = m.start()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.state == StateRunning {
		return tick()
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// State reports the screen being shown; help overlays the others.
func (m Model) State() State {
	if m.showHelp {
		return StateHelp
	}
	return m.state
}

// Settings returns the current form values.
func (m Model) Settings() config.Settings {
	return m.settings
}

// TimeRemaining returns the remaining duration of a timed run.
func (m Model) TimeRemaining() time.Duration {
	if m.state != StateRunning {
		return 0
	}
	return m.engine.TimeRemaining()
}
