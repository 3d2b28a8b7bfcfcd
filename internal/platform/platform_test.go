package platform

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInfoSummary(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "windows",
			info: Info{OS: "windows", Tools: []string{"SendInput"}},
			want: "windows · SendInput",
		},
		{
			name: "linux with uinput",
			info: Info{OS: "linux", DisplayServer: "wayland", UinputAccess: true, Tools: []string{"ydotool"}},
			want: "linux · wayland · uinput · ydotool",
		},
		{
			name: "bare",
			info: Info{OS: "plan9"},
			want: "plan9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Summary())
		})
	}
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	LogDiagnostics(log, Info{OS: "linux", DisplayServer: "x11", Tools: []string{"xdotool"}, Notes: "add yourself to the input group"})

	out := buf.String()
	assert.Contains(t, out, `"display_server":"x11"`)
	assert.Contains(t, out, `"tools":["xdotool"]`)
	assert.Contains(t, out, "input group")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestCapabilitiesReportsOS(t *testing.T) {
	info := Capabilities()
	assert.NotEmpty(t, info.OS)
}

func TestDoubleClickTimeNonNegative(t *testing.T) {
	if testing.Short() {
		t.Skip("queries desktop settings")
	}
	assert.GreaterOrEqual(t, DoubleClickTime(), time.Duration(0))
}
