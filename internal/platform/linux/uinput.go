//go:build linux

package linux

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// uinput constants.
const (
	uinputDevicePath = "/dev/uinput"
	uinputBusTypeUSB = 0x03
	uinputVendorID   = 0x1234
	uinputProductID  = 0x5679
	uinputDeviceName = "autoclicker-mouse"

	// udev needs a moment to publish a new device before its events are seen
	uinputSettleDelay = 200 * time.Millisecond

	// Linux input event types and codes
	evSyn     = 0x00
	evKey     = 0x01
	evRel     = 0x02
	synReport = 0x00
	relX      = 0x00
	relY      = 0x01
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112

	// uinput ioctl commands
	uiSetEvbit   = 0x40045564 // _IOW('U', 100, int)
	uiSetKeybit  = 0x40045565 // _IOW('U', 101, int)
	uiSetRelbit  = 0x40045566 // _IOW('U', 102, int)
	uiDevCreate  = 0x5501     // _IO('U', 1)
	uiDevDestroy = 0x5502     // _IO('U', 2)
)

type uinputUserDev struct {
	name [80]byte
	id   struct {
		bustype uint16
		vendor  uint16
		product uint16
		version uint16
	}
	ffEffectsMax uint32
	absmax       [64]int32
	absmin       [64]int32
	absfuzz      [64]int32
	absflat      [64]int32
}

type inputEvent struct {
	time  unix.Timeval
	etype uint16
	code  uint16
	value int32
}

// UinputDevice is a virtual mouse created through the uinput kernel interface.
type UinputDevice struct {
	mu sync.Mutex
	fd int
}

// OpenUinput creates the virtual mouse.
func OpenUinput() (*UinputDevice, error) {
	fd, err := unix.Open(uinputDevicePath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uinputDevicePath, err)
	}
	u := &UinputDevice{fd: fd}

	if err := u.enableEvents(); err != nil {
		u.Close()
		return nil, fmt.Errorf("enable uinput events: %w", err)
	}
	if err := u.createDevice(); err != nil {
		u.Close()
		return nil, fmt.Errorf("create uinput device: %w", err)
	}

	time.Sleep(uinputSettleDelay)
	return u, nil
}

func (u *UinputDevice) ioctl(req, arg uintptr) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(u.fd), req, arg); errno != 0 {
		return errno
	}
	return nil
}

// enableEvents declares button and relative axis support. Without the axes
// libinput does not classify the device as a pointer.
func (u *UinputDevice) enableEvents() error {
	steps := []struct{ req, arg uintptr }{
		{uiSetEvbit, evKey},
		{uiSetKeybit, btnLeft},
		{uiSetKeybit, btnRight},
		{uiSetKeybit, btnMiddle},
		{uiSetEvbit, evRel},
		{uiSetRelbit, relX},
		{uiSetRelbit, relY},
	}
	for _, s := range steps {
		if err := u.ioctl(s.req, s.arg); err != nil {
			return err
		}
	}
	return nil
}

func (u *UinputDevice) createDevice() error {
	var dev uinputUserDev
	copy(dev.name[:], uinputDeviceName)
	dev.id.bustype = uinputBusTypeUSB
	dev.id.vendor = uinputVendorID
	dev.id.product = uinputProductID

	if _, err := unix.Write(u.fd, unsafe.Slice((*byte)(unsafe.Pointer(&dev)), unsafe.Sizeof(dev))); err != nil {
		return err
	}
	return u.ioctl(uiDevCreate, 0)
}

func (u *UinputDevice) emit(etype, code uint16, value int32) error {
	ev := inputEvent{etype: etype, code: code, value: value}
	_, err := unix.Write(u.fd, unsafe.Slice((*byte)(unsafe.Pointer(&ev)), unsafe.Sizeof(ev)))
	return err
}

// Press sends a press and release of the given BTN_* code.
func (u *UinputDevice) Press(code uint16) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.fd < 0 {
		return fmt.Errorf("uinput device closed")
	}
	for _, value := range []int32{1, 0} {
		if err := u.emit(evKey, code, value); err != nil {
			return err
		}
		if err := u.emit(evSyn, synReport, 0); err != nil {
			return err
		}
	}
	return nil
}

// Close destroys the virtual device.
func (u *UinputDevice) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.fd < 0 {
		return nil
	}
	_ = u.ioctl(uiDevDestroy, 0)
	err := unix.Close(u.fd)
	u.fd = -1
	return err
}
