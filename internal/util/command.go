package util

import "os/exec"

// HasCommand reports whether name resolves to an executable, either on PATH
// or as a path.
func HasCommand(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
