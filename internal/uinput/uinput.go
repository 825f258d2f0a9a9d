// Package uinput creates kernel input devices through /dev/uinput.
package uinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/evcode"
)

const (
	DefaultPath          = "/dev/uinput"
	DefaultSettleTimeout = time.Second
)

// Driver implements device.Driver on top of the uinput module.
type Driver struct {
	Path string
	// SettleTimeout bounds the wait for udev to publish the event node.
	SettleTimeout time.Duration

	logger *slog.Logger
}

func New(logger *slog.Logger) *Driver {
	return &Driver{Path: DefaultPath, SettleTimeout: DefaultSettleTimeout, logger: logger}
}

// Create opens the uinput node, registers caps and creates the device.
// Failing to register an individual code is logged and skipped.
func (d *Driver) Create(caps device.Capabilities) (device.Handle, error) {
	fd, err := unix.Open(d.Path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Path, err)
	}
	f := os.NewFile(uintptr(fd), d.Path)

	if err := d.configure(fd, caps); err != nil {
		_ = f.Close()
		return nil, err
	}

	watch := startSettleWatch(d.logger)
	if err := ioctlNoArg(fd, uiDevCreate); err != nil {
		if watch != nil {
			watch.close()
		}
		_ = f.Close()
		return nil, fmt.Errorf("UI_DEV_CREATE: %w", err)
	}

	sysname, err := readSysname(fd)
	if err != nil {
		d.logger.Warn("UI_GET_SYSNAME failed", "name", caps.Name, "error", err)
	}

	if watch != nil {
		if !watch.wait(sysname, d.SettleTimeout) {
			d.logger.Warn("timed out waiting for device node", "sysname", sysname, "timeout", d.SettleTimeout)
		}
		watch.close()
	} else {
		time.Sleep(d.SettleTimeout)
	}

	d.logger.Debug("uinput device created", "name", caps.Name, "sysname", sysname)
	return &Device{fd: fd, f: f, sysname: sysname}, nil
}

func (d *Driver) configure(fd int, caps device.Capabilities) error {
	if len(caps.Keys) > 0 {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, int(evcode.EvKey)); err != nil {
			return fmt.Errorf("UI_SET_EVBIT EV_KEY: %w", err)
		}
		d.setBits(fd, uiSetKeyBit, "UI_SET_KEYBIT", caps.Keys)
	}
	if len(caps.Rel) > 0 {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, int(evcode.EvRel)); err != nil {
			return fmt.Errorf("UI_SET_EVBIT EV_REL: %w", err)
		}
		d.setBits(fd, uiSetRelBit, "UI_SET_RELBIT", caps.Rel)
	}
	if len(caps.Abs) > 0 {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, int(evcode.EvAbs)); err != nil {
			return fmt.Errorf("UI_SET_EVBIT EV_ABS: %w", err)
		}
		for _, ax := range caps.Abs {
			if err := unix.IoctlSetInt(fd, uiSetAbsBit, int(ax.Code)); err != nil {
				d.logger.Warn("UI_SET_ABSBIT failed", "code", ax.Code, "error", err)
				continue
			}
			setup := uinputAbsSetup{Code: ax.Code, Info: absInfo{Minimum: ax.Min, Maximum: ax.Max}}
			if err := ioctl(fd, uiAbsSetup, unsafe.Pointer(&setup)); err != nil {
				d.logger.Warn("UI_ABS_SETUP failed", "code", ax.Code, "error", err)
			}
		}
	}

	setup := uinputSetup{ID: inputID{
		Bustype: busUSB,
		Vendor:  caps.Vendor,
		Product: caps.Product,
		Version: caps.Version,
	}}
	copy(setup.Name[:maxNameSize-1], caps.Name)
	if err := ioctl(fd, uiDevSetup, unsafe.Pointer(&setup)); err != nil {
		return fmt.Errorf("UI_DEV_SETUP: %w", err)
	}
	return nil
}

func (d *Driver) setBits(fd int, req uint, name string, codes []uint16) {
	failed := 0
	for _, c := range codes {
		if err := unix.IoctlSetInt(fd, req, int(c)); err != nil {
			failed++
			d.logger.Debug(name+" failed", "code", c, "error", err)
		}
	}
	if failed > 0 {
		d.logger.Warn("some capability codes were rejected", "ioctl", name, "failed", failed, "total", len(codes))
	}
}

func readSysname(fd int) (string, error) {
	var buf [maxSysnameSize]byte
	if err := ioctl(fd, uiGetSysname(len(buf)), unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf[:], 0); i >= 0 {
		return string(buf[:i]), nil
	}
	return string(buf[:]), nil
}

// Device is a created uinput device.
type Device struct {
	fd      int
	f       *os.File
	sysname string
}

// inputEvent is struct input_event; the timeval fields are native longs.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

func (dev *Device) Emit(typ, code uint16, value int32) error {
	ev := inputEvent{
		Time:  unix.NsecToTimeval(time.Now().UnixNano()),
		Type:  typ,
		Code:  code,
		Value: value,
	}
	var buf bytes.Buffer
	buf.Grow(int(unsafe.Sizeof(ev)))
	if err := binary.Write(&buf, binary.NativeEndian, &ev); err != nil {
		return err
	}
	_, err := dev.f.Write(buf.Bytes())
	return err
}

func (dev *Device) Sysname() string { return dev.sysname }

func (dev *Device) Destroy() error {
	err := ioctlNoArg(dev.fd, uiDevDestroy)
	if err != nil {
		err = fmt.Errorf("UI_DEV_DESTROY: %w", err)
	}
	return errors.Join(err, dev.f.Close())
}
