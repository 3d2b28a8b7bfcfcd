//go:build windows

package platform

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

const (
	inputMouse = 0

	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040

	threadPriorityAboveNormal = 1
	timerResolutionMs         = 1
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procSendInput          = user32.NewProc("SendInput")
	procGetDoubleClickTime = user32.NewProc("GetDoubleClickTime")

	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procGetThreadPriority = kernel32.NewProc("GetThreadPriority")
	procSetThreadPriority = kernel32.NewProc("SetThreadPriority")

	winmm               = windows.NewLazySystemDLL("winmm.dll")
	procTimeBeginPeriod = winmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = winmm.NewProc("timeEndPeriod")
)

type mouseInput struct {
	dx        int32
	dy        int32
	mouseData uint32
	dwFlags   uint32
	time      uint32
	extraInfo uintptr
}

type input struct {
	inputType uint32
	mi        mouseInput
}

type windowsClicker struct{}

func buttonFlags(b clicker.Button) (down, up uint32) {
	switch b {
	case clicker.ButtonSecondary:
		return mouseeventfRightDown, mouseeventfRightUp
	case clicker.ButtonTertiary:
		return mouseeventfMiddleDown, mouseeventfMiddleUp
	default:
		return mouseeventfLeftDown, mouseeventfLeftUp
	}
}

// Click injects a press and release in one SendInput call so nothing can be
// interleaved between them.
func (windowsClicker) Click(b clicker.Button) error {
	down, up := buttonFlags(b)
	inputs := [2]input{
		{inputType: inputMouse, mi: mouseInput{dwFlags: down}},
		{inputType: inputMouse, mi: mouseInput{dwFlags: up}},
	}
	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if n != uintptr(len(inputs)) {
		return fmt.Errorf("SendInput inserted %d of %d events: %w", n, len(inputs), err)
	}
	return nil
}

func (windowsClicker) Name() string { return "SendInput" }

func (windowsClicker) Close() error { return nil }

// NewClicker returns the SendInput backend.
func NewClicker(log zerolog.Logger) (Clicker, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	log.Info().Str("component", "platform").Str("backend", "SendInput").Msg("click backend selected")
	return windowsClicker{}, nil
}

func Capabilities() Info {
	return Info{OS: "windows", Tools: []string{"SendInput"}}
}

// DoubleClickTime returns the user's double-click threshold.
func DoubleClickTime() time.Duration {
	if err := procGetDoubleClickTime.Find(); err != nil {
		return 0
	}
	ms, _, _ := procGetDoubleClickTime.Call()
	return time.Duration(ms) * time.Millisecond
}

// threadHint raises the loop thread's priority and the system timer
// resolution for the duration of a run.
type threadHint struct {
	timeBegin, timeEnd *windows.LazyProc
}

func (h threadHint) Apply() (func(), error) {
	if err := procSetThreadPriority.Find(); err != nil {
		return nil, fmt.Errorf("SetThreadPriority: %w", err)
	}
	runtime.LockOSThread()
	thread := windows.CurrentThread()

	prev, _, _ := procGetThreadPriority.Call(uintptr(thread))
	if ok, _, err := procSetThreadPriority.Call(uintptr(thread), threadPriorityAboveNormal); ok == 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("SetThreadPriority: %w", err)
	}
	restoreTimer := raiseTimerResolution(h.timeBegin, h.timeEnd)

	return func() {
		restoreTimer()
		procSetThreadPriority.Call(uintptr(thread), prev)
		runtime.UnlockOSThread()
	}, nil
}

// raiseTimerResolution requests 1ms timer resolution and returns the call
// that undoes it. Without winmm it does nothing.
func raiseTimerResolution(begin, end *windows.LazyProc) func() {
	if begin.Find() != nil || end.Find() != nil {
		return func() {}
	}
	begin.Call(timerResolutionMs)
	return func() { end.Call(timerResolutionMs) }
}

func NewExecutionHint() clicker.ExecutionHint {
	return threadHint{timeBegin: procTimeBeginPeriod, timeEnd: procTimeEndPeriod}
}
