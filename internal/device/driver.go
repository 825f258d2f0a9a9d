// Package device owns the virtual input devices of a server process.
//
// A Registry holds one session per device class. Sessions are created by
// start requests, driven by action requests and torn down by stop requests.
// The registry is used from a single goroutine; nothing here locks.
package device

import (
	"errors"
	"fmt"
	"math"

	"github.com/lundmar/input-emulator/pkg/apitypes"
)

// AbsAxis describes the range of one absolute axis.
type AbsAxis struct {
	Code uint16
	Min  int32
	Max  int32
}

// Capabilities is everything a driver needs to create a device.
type Capabilities struct {
	Name    string
	Vendor  uint16
	Product uint16
	Version uint16

	Keys []uint16
	Rel  []uint16
	Abs  []AbsAxis
}

// Driver creates kernel input devices.
type Driver interface {
	Create(caps Capabilities) (Handle, error)
}

// Handle is a created device. It is owned by exactly one session.
type Handle interface {
	Emit(typ, code uint16, value int32) error
	// Sysname is the kernel name of the device, e.g. "input12".
	Sysname() string
	Destroy() error
}

var (
	ErrAlreadyOnline = errors.New("device already online")
	ErrOutOfRange    = errors.New("value out of range")
)

// axisValue converts a wire u32 into the kernel's signed axis range.
func axisValue(name string, v uint32) (int32, error) {
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%s %d: %w 0..%d", name, v, ErrOutOfRange, math.MaxInt32)
	}
	return int32(v), nil
}

// FatalError reports a driver failure that leaves the server unable to
// continue. The dispatch loop answers the request and then shuts down.
type FatalError struct {
	Class apitypes.Class
	Op    string
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Class, e.Op, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }
