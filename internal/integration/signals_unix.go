//go:build !windows
// +build !windows

package integration

import (
	"os"
	"syscall"
)

// helperSignals mirrors the signals the autoclicker binary listens for.
func helperSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGTSTP,
	}
}

func isSIGTSTP(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}

func signalByName(name string) os.Signal {
	switch name {
	case "SIGINT":
		return syscall.SIGINT
	case "SIGQUIT":
		return syscall.SIGQUIT
	case "SIGTSTP":
		return syscall.SIGTSTP
	default:
		return syscall.SIGTERM
	}
}

const signalsSupported = true
