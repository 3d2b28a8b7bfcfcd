package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/stigoleg/autoclicker/internal/util"
)

// ErrConflictingStop is returned when both --duration and --clock are set.
var ErrConflictingStop = errors.New("--duration and --clock cannot be used together")

// Config holds the command line options.
type Config struct {
	// Duration is how long a run lasts before stopping itself; 0 means
	// until stopped by hand.
	Duration time.Duration

	// Clock is the wall-clock stop time when --clock was given. It stays
	// absolute so runs started later still stop on time; Duration is 0.
	Clock time.Time

	SettingsPath string
	StartNow     bool
	LogLevel     zerolog.Level
	ShowVersion  bool
}

var (
	errorColor  = lipgloss.Color("#FF4040")
	mutedColor  = lipgloss.Color("#999999")
	accentColor = lipgloss.Color("#7D56F4")

	errorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)
	errorHeader = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	errorDetail = lipgloss.NewStyle().Foreground(mutedColor)
	usageTitle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)

// FormatError renders a parse error for the terminal. Errors carrying a
// "Valid formats" section get a bordered box.
func FormatError(err error) string {
	msg := err.Error()
	parts := strings.SplitN(msg, "\n\n", 2)
	if len(parts) == 2 {
		return errorBox.Render(fmt.Sprintf("%s\n\n%s", errorHeader.Render(parts[0]), errorDetail.Render(parts[1])))
	}
	return errorHeader.Render(msg)
}

func newFlagSet(output io.Writer) (*flag.FlagSet, *rawFlags) {
	flags := flag.NewFlagSet("autoclicker", flag.ContinueOnError)
	flags.SetOutput(output)

	raw := &rawFlags{}
	flags.StringVar(&raw.duration, "duration", "", "Stop clicking after a duration (e.g., \"2h30m\" or minutes)")
	flags.StringVar(&raw.duration, "d", "", "Stop clicking after a duration (e.g., \"2h30m\" or minutes)")
	flags.StringVar(&raw.clock, "clock", "", "Stop clicking at a clock time (e.g., \"22:30\" or \"10:30PM\")")
	flags.StringVar(&raw.clock, "c", "", "Stop clicking at a clock time (e.g., \"22:30\" or \"10:30PM\")")
	flags.StringVar(&raw.settings, "config", "", "Path to the settings file")
	flags.BoolVar(&raw.start, "start", false, "Start clicking immediately with the saved settings")
	flags.StringVar(&raw.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.BoolVar(&raw.version, "version", false, "Show version information")
	flags.BoolVar(&raw.version, "v", false, "Show version information")

	flags.Usage = func() {
		fmt.Fprintln(output, usageTitle.Render("autoclicker")+" clicks the mouse on a jittered schedule.")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Usage: autoclicker [flags]")
		fmt.Fprintln(output)
		flags.PrintDefaults()
	}
	return flags, raw
}

type rawFlags struct {
	duration string
	clock    string
	settings string
	start    bool
	logLevel string
	version  bool
}

// ParseArgs parses args relative to now without printing or exiting.
func ParseArgs(args []string, now time.Time, output io.Writer) (*Config, error) {
	flags, raw := newFlagSet(output)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		SettingsPath: raw.settings,
		StartNow:     raw.start,
		ShowVersion:  raw.version,
	}

	level, err := zerolog.ParseLevel(strings.ToLower(raw.logLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", raw.logLevel, err)
	}
	cfg.LogLevel = level

	if raw.duration != "" && raw.clock != "" {
		return nil, ErrConflictingStop
	}

	if raw.duration != "" {
		d, err := util.ParseDuration(raw.duration)
		if err != nil {
			return nil, err
		}
		cfg.Duration = d
	}

	if raw.clock != "" {
		t, err := util.ParseTimeStringWithNow(raw.clock, now)
		if err != nil {
			return nil, err
		}
		cfg.Clock = util.NextOccurrence(t, now)
	}

	if cfg.SettingsPath == "" {
		path, err := DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		cfg.SettingsPath = path
	}
	return cfg, nil
}

// ParseFlagsWithNow parses os.Args. Help, version and invalid input are
// handled here and end the process.
func ParseFlagsWithNow(version string, now time.Time) (*Config, error) {
	cfg, err := ParseArgs(os.Args[1:], now, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, FormatError(err))
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("Autoclicker Version: %s\n", version)
		os.Exit(0)
	}
	return cfg, nil
}

func ParseFlags(version string) (*Config, error) {
	return ParseFlagsWithNow(version, time.Now())
}

// FlagDoc describes one command line option for generated docs.
type FlagDoc struct {
	Short string
	Long  string
	Arg   string
	Desc  string
}

// FlagDocs lists the options, pairing each long flag with its one-letter
// alias, followed by -h/--help.
func FlagDocs() []FlagDoc {
	flags, _ := newFlagSet(io.Discard)

	short := map[string]string{}
	var long []*flag.Flag
	flags.VisitAll(func(f *flag.Flag) {
		if len(f.Name) == 1 {
			short[f.Usage] = "-" + f.Name
			return
		}
		long = append(long, f)
	})

	docs := make([]FlagDoc, 0, len(long)+1)
	for _, f := range long {
		d := FlagDoc{Short: short[f.Usage], Long: "--" + f.Name, Desc: f.Usage}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); !ok || !b.IsBoolFlag() {
			d.Arg = "<string>"
		}
		docs = append(docs, d)
	}
	return append(docs, FlagDoc{Short: "-h", Long: "--help", Desc: "Show help message"})
}
