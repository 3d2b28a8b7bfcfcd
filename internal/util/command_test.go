package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHasCommand(t *testing.T) {
	self, err := filepath.Abs(os.Args[0])
	if err != nil {
		t.Fatalf("resolve test binary: %v", err)
	}

	tests := []struct {
		name     string
		command  string
		expected bool
	}{
		{
			name:     "absolute path to an executable",
			command:  self,
			expected: true,
		},
		{
			name:     "nonexistent click tool",
			command:  "xdotool-definitely-does-not-exist-12345",
			expected: false,
		},
		{
			name:     "empty string",
			command:  "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasCommand(tt.command)
			if got != tt.expected {
				t.Errorf("HasCommand(%q) = %v, want %v", tt.command, got, tt.expected)
			}
		})
	}
}
