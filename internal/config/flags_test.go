package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseArgs(t *testing.T) {
	// Use a fixed time for consistent testing
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local) // 10:00 AM

	tests := []struct {
		name         string
		args         []string
		wantDuration time.Duration
		wantUntil    time.Duration
		wantClock    bool
		wantErr      error
		wantErrText  string
	}{
		{
			name:         "valid duration flag",
			args:         []string{"-d", "2h30m"},
			wantDuration: 150 * time.Minute,
		},
		{
			name:         "valid duration in minutes",
			args:         []string{"--duration", "150"},
			wantDuration: 150 * time.Minute,
		},
		{
			name:         "valid clock 24h format",
			args:         []string{"-c", "22:30"},
			wantUntil:    12*time.Hour + 30*time.Minute,
			wantClock:    true,
		},
		{
			name:         "valid clock 12h format PM",
			args:         []string{"-c", "10:30PM"},
			wantUntil:    12*time.Hour + 30*time.Minute,
			wantClock:    true,
		},
		{
			name:         "clock earlier than now rolls to tomorrow",
			args:         []string{"-c", "09:45AM"},
			wantUntil:    23*time.Hour + 45*time.Minute,
			wantClock:    true,
		},
		{
			name:        "invalid clock format",
			args:        []string{"-c", "25:00"},
			wantErrText: "Valid formats",
		},
		{
			name:        "invalid duration",
			args:        []string{"-d", "soon"},
			wantErrText: "Valid formats",
		},
		{
			name:    "both duration and clock flags",
			args:    []string{"-d", "2h30m", "-c", "22:30"},
			wantErr: ErrConflictingStop,
		},
		{
			name:    "help",
			args:    []string{"-h"},
			wantErr: flag.ErrHelp,
		},
		{
			name:        "bad log level",
			args:        []string{"--log-level", "loud"},
			wantErrText: "invalid log level",
		},
		{
			name: "no flags",
			args: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseArgs(tt.args, now, io.Discard)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseArgs(%v) error = %v, want %v", tt.args, err, tt.wantErr)
				}
				return
			}
			if tt.wantErrText != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErrText) {
					t.Fatalf("ParseArgs(%v) error = %v, want it to contain %q", tt.args, err, tt.wantErrText)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs(%v) unexpected error: %v", tt.args, err)
			}

			if cfg.Duration != tt.wantDuration {
				t.Errorf("ParseArgs(%v) duration = %v, want %v", tt.args, cfg.Duration, tt.wantDuration)
			}
			if tt.wantClock && cfg.Clock.Sub(now) != tt.wantUntil {
				t.Errorf("ParseArgs(%v) clock %v is %v away, want %v", tt.args, cfg.Clock, cfg.Clock.Sub(now), tt.wantUntil)
			}
			if !tt.wantClock && !cfg.Clock.IsZero() {
				t.Errorf("ParseArgs(%v) clock = %v, want zero", tt.args, cfg.Clock)
			}
		})
	}
}

func TestParseArgsOptions(t *testing.T) {
	now := time.Now()

	cfg, err := ParseArgs([]string{"--config", "/tmp/x.yaml", "--start", "--log-level", "DEBUG", "-v"}, now, io.Discard)
	if err != nil {
		t.Fatalf("ParseArgs unexpected error: %v", err)
	}
	if cfg.SettingsPath != "/tmp/x.yaml" {
		t.Errorf("SettingsPath = %q", cfg.SettingsPath)
	}
	if !cfg.StartNow || !cfg.ShowVersion {
		t.Errorf("StartNow = %v, ShowVersion = %v, want both true", cfg.StartNow, cfg.ShowVersion)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}

	cfg, err = ParseArgs(nil, now, io.Discard)
	if err != nil {
		t.Fatalf("ParseArgs unexpected error: %v", err)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("default LogLevel = %v, want info", cfg.LogLevel)
	}
	if !strings.HasSuffix(cfg.SettingsPath, "settings.yaml") {
		t.Errorf("default SettingsPath = %q", cfg.SettingsPath)
	}
}

func TestParseFlagsTimeCalculation(t *testing.T) {
	// Save original args and restore them after the test
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local) // 10:00 AM
	os.Args = []string{"autoclicker", "-c", "12:00"}

	cfg, err := ParseFlagsWithNow("test-version", now)
	if err != nil {
		t.Fatalf("ParseFlags() unexpected error: %v", err)
	}

	if cfg.Clock.Hour() != 12 || cfg.Clock.Minute() != 0 {
		t.Errorf("ParseFlags() clock = %v, want 12:00", cfg.Clock)
	}
	if until := cfg.Clock.Sub(now); until != 2*time.Hour {
		t.Errorf("ParseFlags() clock is %v away, want exactly 2h", until)
	}
	if cfg.Duration != 0 {
		t.Errorf("ParseFlags() duration = %v, want 0 for a clock stop", cfg.Duration)
	}
}

func TestFormatError(t *testing.T) {
	boxed := FormatError(errors.New("Invalid duration format: \"x\"\n\nValid formats:\n• Minutes: 90"))
	if !strings.Contains(boxed, "Valid formats") || !strings.Contains(boxed, "Invalid duration format") {
		t.Errorf("FormatError lost content: %q", boxed)
	}

	plain := FormatError(ErrConflictingStop)
	if !strings.Contains(plain, ErrConflictingStop.Error()) {
		t.Errorf("FormatError(%v) = %q", ErrConflictingStop, plain)
	}
}

func TestFlagDocs(t *testing.T) {
	docs := FlagDocs()
	byLong := map[string]FlagDoc{}
	for _, d := range docs {
		byLong[d.Long] = d
	}

	tests := []struct {
		long, short, arg string
	}{
		{"--duration", "-d", "<string>"},
		{"--clock", "-c", "<string>"},
		{"--config", "", "<string>"},
		{"--start", "", ""},
		{"--log-level", "", "<string>"},
		{"--version", "-v", ""},
		{"--help", "-h", ""},
	}
	for _, tt := range tests {
		d, ok := byLong[tt.long]
		if !ok {
			t.Errorf("FlagDocs() missing %s", tt.long)
			continue
		}
		if d.Short != tt.short || d.Arg != tt.arg {
			t.Errorf("FlagDocs()[%s] = %+v, want short %q arg %q", tt.long, d, tt.short, tt.arg)
		}
	}
	if len(docs) != len(tests) {
		t.Errorf("FlagDocs() returned %d entries, want %d", len(docs), len(tests))
	}
}
