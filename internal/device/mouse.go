package device

import (
	"fmt"

	"github.com/lundmar/input-emulator/internal/evcode"
)

const (
	DefaultXMax = 1024
	DefaultYMax = 768
)

type MouseConfig struct {
	XMax uint32
	YMax uint32
}

type Mouse struct {
	session
	cfg MouseConfig
}

func (m *Mouse) Create(cfg MouseConfig) (string, error) {
	if m.Online() {
		return "", fmt.Errorf("%s: %w", m.class, ErrAlreadyOnline)
	}
	xMax, err := axisValue("x-max", cfg.XMax)
	if err != nil {
		return "", err
	}
	yMax, err := axisValue("y-max", cfg.YMax)
	if err != nil {
		return "", err
	}
	sysname, err := m.create(Capabilities{
		Name:    "Simulated mouse",
		Vendor:  0x1111,
		Product: 0x1111,
		Version: 1,
		Keys:    evcode.MouseButtons,
		Rel:     []uint16{evcode.RelX, evcode.RelY, evcode.RelWheel},
		Abs: []AbsAxis{
			{Code: evcode.AbsX, Max: xMax},
			{Code: evcode.AbsY, Max: yMax},
		},
	})
	if err != nil {
		return "", err
	}
	m.cfg = cfg
	return sysname, nil
}

func (m *Mouse) Config() MouseConfig { return m.cfg }

// Move moves the pointer relative to its current position.
func (m *Mouse) Move(dx, dy int32) error {
	return m.emit(event{evcode.EvRel, evcode.RelX, dx}, event{evcode.EvRel, evcode.RelY, dy})
}

func (m *Mouse) Press(button uint16) error {
	return m.emit(event{evcode.EvKey, button, 1})
}

func (m *Mouse) Release(button uint16) error {
	return m.emit(event{evcode.EvKey, button, 0})
}

func (m *Mouse) Click(button uint16) error {
	if !m.Online() {
		return nil
	}
	if err := m.Press(button); err != nil {
		return err
	}
	m.reg.opts.Sleep(m.reg.opts.ClickHold)
	return m.Release(button)
}

// Scroll turns the wheel; positive ticks scroll up.
func (m *Mouse) Scroll(ticks int32) error {
	return m.emit(event{evcode.EvRel, evcode.RelWheel, ticks})
}
