package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.showHelp {
		return helpView(m)
	}

	switch m.state {
	case StateForm:
		return formView(m)
	case StateRunning:
		return runningView(m)
	}
	return ""
}

func formView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Autoclicker"))
	b.WriteString("\n\n")

	for f := field(0); f < fieldCount; f++ {
		value := fieldValue(m.settings, f)
		if !f.numeric() {
			value = "‹ " + value + " ›"
		}
		cursor := "  "
		if f == m.focused {
			cursor = "> "
			value = Current.SelectedItem.Render(value)
		} else {
			value = Current.Value.Render(value)
		}
		b.WriteString(cursor + Current.Label.Render(f.String()) + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Current.Summary.Render(m.settings.IntervalConfig().String()))
	b.WriteString("\n")

	switch {
	case !m.stopAt.IsZero():
		b.WriteString(Current.InactiveStatus.Render("Runs stop at " + m.stopAt.Format("15:04")))
		b.WriteString("\n")
	case m.duration > 0:
		b.WriteString(Current.InactiveStatus.Render(fmt.Sprintf("Runs stop after %s", m.duration.Round(time.Second))))
		b.WriteString("\n")
	}

	writeMessages(&b, m)
	b.WriteString("\n" + m.help.View(m.keys.ForState(StateForm)))
	writeFooter(&b, m)
	return b.String()
}

func runningView(m Model) string {
	var b strings.Builder
	stats := m.engine.Stats()
	cfg := m.settings.IntervalConfig()

	b.WriteString(Current.Title.Render("Autoclicker"))
	b.WriteString("\n\n")
	b.WriteString(Current.ActiveStatus.Render("Clicking " + cfg.String()))
	b.WriteString("\n\n")

	health := m.engine.Health()
	healthStyle := Current.Value
	if health == clicker.HealthFailed {
		healthStyle = lipgloss.NewStyle().Foreground(defaultColors.Error)
	}

	rows := []struct{ label, value string }{
		{"Clicks", fmt.Sprintf("%d", stats.Clicks)},
		{"Cycles", fmt.Sprintf("%d", stats.Cycles)},
		{"Failures", fmt.Sprintf("%d", stats.Failures)},
		{"Health", healthStyle.Render(health.String())},
	}
	if !stats.Started.IsZero() {
		rows = append(rows, struct{ label, value string }{"Elapsed", time.Since(stats.Started).Round(time.Second).String()})
	}
	for _, r := range rows {
		b.WriteString("  " + Current.Label.Render(r.label) + r.value + "\n")
	}

	if m.runFor > 0 {
		remaining := m.TimeRemaining()
		b.WriteString("\n")
		b.WriteString(Current.Countdown.Render(formatRemaining(remaining)))
		b.WriteString("\n")
		b.WriteString(Current.ProgressFrame.Render(progressBar(1-float64(remaining)/float64(m.runFor), 24)))
		b.WriteString("\n")
	}

	writeMessages(&b, m)
	b.WriteString("\n" + m.help.View(m.keys.ForState(StateRunning)))
	writeFooter(&b, m)
	return b.String()
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d remaining", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d remaining", mins, secs)
}

// gradient runs from the highlight purple to the special green.
var gradient = []string{
	"#7D56F4", "#6E5AF5", "#5F5FF7", "#5063F8", "#4168FA",
	"#326CFB", "#2371FD", "#1475FE", "#057AFF", "#007FF5",
	"#0087E1", "#008FCD", "#0097B9", "#009FA5", "#00A791",
	"#00AF7D", "#00B769", "#00BF55", "#43BF6D",
}

func progressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))

	var bar strings.Builder
	for i := 0; i < width; i++ {
		style := Current.ProgressBar
		if i < filled {
			color := gradient[i*(len(gradient)-1)/max(width-1, 1)]
			style = style.Background(lipgloss.Color(color))
		}
		bar.WriteString(style.Render(" "))
	}
	return bar.String()
}

func writeMessages(b *strings.Builder, m Model) {
	if m.Notice != "" {
		b.WriteString("\n" + Current.Notice.Render(m.Notice) + "\n")
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage) + "\n")
	}
}

func writeFooter(b *strings.Builder, m Model) {
	var parts []string
	if m.platform != "" {
		parts = append(parts, m.platform)
	}
	if m.version != "" {
		parts = append(parts, "v"+m.version)
	}
	if len(parts) > 0 {
		b.WriteString("\n" + Current.InactiveStatus.Render(strings.Join(parts, " · ")))
	}
}

func helpView(m Model) string {
	text := fmt.Sprintf(`Autoclicker Help

Usage:
  autoclicker [flags]

Flags:
  -d, --duration string   Stop clicking after a duration (e.g., "2h30m" or minutes)
  -c, --clock string      Stop clicking at a clock time (e.g., "22:30" or "10:30PM")
      --config string     Path to the settings file
      --start             Start clicking immediately with the saved settings
      --log-level string  Log level written to debug.log
  -v, --version           Show version information

Form:
  ↑/↓        Choose a field
  ←/→        Adjust a number, toggle jitter, cycle button or click type
  0-9, ⌫     Type or delete digits
  enter, %[1]s  Start clicking

Running:
  enter/s, %[1]s  Stop clicking

Each cycle waits the interval, shifted by a random offset within the jitter
bound when jitter is on, then clicks once, twice or three times.`, m.keys.Hotkey.Help().Key)

	return Current.Help.Render(text) + "\n\n" + m.help.View(m.keys.ForState(StateHelp))
}
