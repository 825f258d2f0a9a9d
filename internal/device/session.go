package device

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/lundmar/input-emulator/internal/evcode"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

// SysfsInputDir is where the kernel exposes uinput-created devices.
const SysfsInputDir = "/sys/devices/virtual/input"

type event struct {
	typ   uint16
	code  uint16
	value int32
}

// session is the lifecycle shared by all device classes.
type session struct {
	class   apitypes.Class
	reg     *Registry
	logger  *slog.Logger
	handle  Handle
	sysname string
}

func (s *session) Online() bool { return s.handle != nil }

// Sysname returns the kernel name of the device, empty while offline.
func (s *session) Sysname() string { return s.sysname }

func (s *session) create(caps Capabilities) (string, error) {
	if s.Online() {
		return "", fmt.Errorf("%s: %w", s.class, ErrAlreadyOnline)
	}
	h, err := s.reg.driver.Create(caps)
	if err != nil {
		return "", &FatalError{Class: s.class, Op: "create", Err: err}
	}
	s.handle = h
	s.sysname = h.Sysname()
	s.reg.refs++
	s.logger.Info("device created", "sysname", s.sysname, "refs", s.reg.refs)
	return s.sysname, nil
}

// Destroy removes the device. Calling it on an offline session does nothing.
func (s *session) Destroy() error {
	if !s.Online() {
		return nil
	}
	s.reg.opts.Sleep(s.reg.opts.DrainDelay)

	err := s.handle.Destroy()
	sysname := s.sysname
	s.handle = nil
	s.sysname = ""
	s.reg.refs--
	if err != nil {
		s.logger.Error("device destroy failed", "sysname", sysname, "error", err)
		return fmt.Errorf("%s destroy: %w", s.class, err)
	}
	s.logger.Info("device destroyed", "sysname", sysname, "refs", s.reg.refs)
	return nil
}

// emit writes evs followed by a sync report. Offline sessions drop them.
func (s *session) emit(evs ...event) error {
	if !s.Online() {
		s.logger.Debug("device offline, dropping events", "count", len(evs))
		return nil
	}
	for _, ev := range append(evs, event{evcode.EvSyn, evcode.SynReport, 0}) {
		if err := s.handle.Emit(ev.typ, ev.code, ev.value); err != nil {
			return fmt.Errorf("%s emit %d/%d: %w", s.class, ev.typ, ev.code, err)
		}
	}
	return nil
}

func (s *session) status(attrs ...apitypes.Attr) apitypes.StatusLine {
	return apitypes.StatusLine{
		Class: s.class,
		Path:  path.Join(SysfsInputDir, s.sysname),
		Attrs: attrs,
	}
}
