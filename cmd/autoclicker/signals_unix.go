//go:build !windows
// +build !windows

package main

import (
	"os"
	"syscall"
)

// getSignalsForPlatform lists the signals that end the program.
func getSignalsForPlatform() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGTSTP,
	}
}

// isSIGTSTPForPlatform reports a terminal stop request; main ignores it.
func isSIGTSTPForPlatform(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}

