package uinput

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// From linux/uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiDevSetup   = 0x405c5503
	uiAbsSetup   = 0x401c5504
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiSetAbsBit  = 0x40045567

	busUSB = 0x03

	maxNameSize    = 80
	maxSysnameSize = 65
)

// uiGetSysname is _IOC(_IOC_READ, 'U', 44, n).
func uiGetSysname(n int) uint {
	return 2<<30 | uint(n)<<16 | 'U'<<8 | 44
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputSetup is struct uinput_setup, 92 bytes.
type uinputSetup struct {
	ID           inputID
	Name         [maxNameSize]byte
	FFEffectsMax uint32
}

type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// uinputAbsSetup is struct uinput_abs_setup, 28 bytes.
type uinputAbsSetup struct {
	Code uint16
	_    [2]byte
	Info absInfo
}

func ioctl(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlNoArg(fd int, req uint) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), 0)
	if errno != 0 {
		return errno
	}
	return nil
}
