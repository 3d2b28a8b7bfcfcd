//go:build windows
// +build windows

package integration

import (
	"os"
	"syscall"
)

func helperSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
	}
}

func isSIGTSTP(sig os.Signal) bool {
	return false
}

func signalByName(name string) os.Signal {
	return syscall.SIGTERM
}

// Process.Signal only supports Kill on Windows.
const signalsSupported = false
