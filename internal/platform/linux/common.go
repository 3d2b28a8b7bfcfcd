//go:build linux

package linux

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/stigoleg/autoclicker/internal/util"
)

// commandTimeout bounds a single click tool invocation.
const commandTimeout = 2 * time.Second

// hasCommand checks if a command is available in the system PATH.
func hasCommand(name string) bool {
	return util.HasCommand(name)
}

// runVerbose executes a command and returns the combined output (stdout+stderr) and any error.
func runVerbose(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}
