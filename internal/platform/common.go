//go:build darwin

package platform

import "github.com/stigoleg/autoclicker/internal/util"

// hasCommand checks if a command is available in the system PATH.
// This is a convenience wrapper around util.HasCommand.
func hasCommand(name string) bool {
	return util.HasCommand(name)
}
