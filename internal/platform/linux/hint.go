//go:build linux

package linux

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// ThreadPriority pins the calling goroutine to its OS thread and lowers that
// thread's nice value. Raising priority needs CAP_SYS_NICE, so callers treat
// failures as best effort.
type ThreadPriority struct {
	Nice int
}

func (p ThreadPriority) Apply() (func(), error) {
	runtime.LockOSThread()
	tid := unix.Gettid()

	// the raw syscall reports 20-nice
	raw, err := unix.Getpriority(unix.PRIO_PROCESS, tid)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("getpriority: %w", err)
	}
	prev := 20 - raw

	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, p.Nice); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("setpriority %d: %w", p.Nice, err)
	}
	return func() {
		_ = unix.Setpriority(unix.PRIO_PROCESS, tid, prev)
		runtime.UnlockOSThread()
	}, nil
}
