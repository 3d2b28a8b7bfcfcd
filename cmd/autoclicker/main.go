package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/clicker"
	"github.com/stigoleg/autoclicker/internal/config"
	"github.com/stigoleg/autoclicker/internal/platform"
	"github.com/stigoleg/autoclicker/internal/ui"
)

const (
	appVersion     = "1.0.0"
	logFileName    = "debug.log"
	cleanupTimeout = 3 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.ParseFlags(appVersion)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.FormatError(err))
		return 1
	}

	// stdout belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.FormatError(fmt.Errorf("open %s: %w", logFileName, err)))
		return 1
	}
	log := zerolog.New(logFile).Level(cfg.LogLevel).With().Timestamp().Logger()
	log.Info().Str("version", appVersion).Str("settings", cfg.SettingsPath).Msg("starting")

	cleanup := clicker.NewCleanupManager(cleanupTimeout, log)

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
	}

	info := platform.Capabilities()
	platform.LogDiagnostics(log, info)

	backend, err := platform.NewClicker(log)
	if err != nil {
		log.Error().Err(err).Msg("no click backend")
		logFile.Close()
		fmt.Fprintln(os.Stderr, config.FormatError(err))
		return 1
	}

	spacing := clicker.BurstSpacing(platform.DoubleClickTime())
	log.Debug().Dur("burst_spacing", spacing).Msg("burst spacing derived from double-click time")

	engine := clicker.NewEngine(backend,
		clicker.WithLogger(log),
		clicker.WithBurstSpacing(spacing),
		clicker.WithExecutionHint(platform.NewExecutionHint()),
	)

	save := func(s config.Settings) error {
		return config.SaveSettings(cfg.SettingsPath, s)
	}

	opts := []ui.Option{
		ui.WithDuration(cfg.Duration),
		ui.WithSaver(save),
		ui.WithVersion(appVersion),
		ui.WithPlatform(info.Summary() + " · " + backend.Name()),
		ui.WithLogger(log),
	}
	if !cfg.Clock.IsZero() {
		opts = append(opts, ui.WithStopAt(cfg.Clock))
	}
	var model ui.Model
	if cfg.StartNow {
		model = ui.NewRunningModel(engine, settings, opts...)
	} else {
		model = ui.NewModel(engine, settings, opts...)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())

	watchCtx, stopWatch := context.WithCancel(context.Background())
	go func() {
		err := config.Watch(watchCtx, cfg.SettingsPath, func(s config.Settings) {
			p.Send(ui.SettingsMsg{Settings: s})
		}, config.WithWatchLogger(log))
		if err != nil {
			log.Warn().Err(err).Msg("settings watcher exited")
		}
	}()

	var final atomic.Pointer[config.Settings]

	// Order matters: nothing may click after the backend is closed.
	cleanup.RegisterFunc("settings watcher", func() error {
		stopWatch()
		return nil
	})
	cleanup.RegisterEngine(engine)
	cleanup.RegisterFunc("click backend", backend.Close)
	cleanup.RegisterFunc("settings", func() error {
		if s := final.Load(); s != nil {
			return save(*s)
		}
		return nil
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)
	go func() {
		for sig := range sigChan {
			if isSIGTSTPForPlatform(sig) {
				log.Debug().Msg("ignoring SIGTSTP")
				continue
			}
			log.Info().Stringer("signal", sig).Msg("received signal")
			cleanup.Execute()
			p.Kill()
			return
		}
	}()

	finalModel, runErr := p.Run()
	signal.Stop(sigChan)
	if m, ok := finalModel.(ui.Model); ok {
		s := m.Settings()
		final.Store(&s)
	}

	code := 0
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		log.Error().Err(runErr).Msg("program failed")
		code = 1
	}
	for _, err := range cleanup.Execute() {
		fmt.Fprintln(os.Stderr, err)
		code = 1
	}
	log.Info().Int("exit_code", code).Msg("exiting")
	logFile.Close()
	return code
}
