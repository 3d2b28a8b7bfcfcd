package platform

import "time"

const (
	// loopNice is the nice value requested for the click loop thread on Linux.
	loopNice = -5

	// scriptExecutionTimeout limits how long we wait for osascript or
	// cliclick to complete.
	scriptExecutionTimeout = 3 * time.Second
)
