package device

import (
	"fmt"
	"math"
	"time"

	"github.com/lundmar/input-emulator/internal/evcode"
)

const (
	DefaultSlots       = 4
	DefaultTapDuration = 15 * time.Millisecond
)

type TouchConfig struct {
	XMax  uint32
	YMax  uint32
	Slots uint32
}

type Touch struct {
	session
	cfg        TouchConfig
	trackingID int32
}

// Create advertises cfg.Slots contacts, numbered 0..Slots-1.
func (t *Touch) Create(cfg TouchConfig) (string, error) {
	if t.Online() {
		return "", fmt.Errorf("%s: %w", t.class, ErrAlreadyOnline)
	}
	xMax, err := axisValue("x-max", cfg.XMax)
	if err != nil {
		return "", err
	}
	yMax, err := axisValue("y-max", cfg.YMax)
	if err != nil {
		return "", err
	}
	if cfg.Slots == 0 {
		return "", fmt.Errorf("slots 0: %w 1..%d", ErrOutOfRange, math.MaxInt32)
	}
	slotMax, err := axisValue("slots", cfg.Slots-1)
	if err != nil {
		return "", err
	}
	sysname, err := t.create(Capabilities{
		Name:    "Simulated touchscreen",
		Vendor:  0x1234,
		Product: 0x5678,
		Keys:    []uint16{evcode.BtnTouch},
		Abs: []AbsAxis{
			{Code: evcode.AbsX, Max: xMax},
			{Code: evcode.AbsY, Max: yMax},
			{Code: evcode.AbsMTSlot, Max: slotMax},
			{Code: evcode.AbsMTPositionX, Max: xMax},
			{Code: evcode.AbsMTPositionY, Max: yMax},
			{Code: evcode.AbsMTTrackingID, Max: 0xffff},
		},
	})
	if err != nil {
		return "", err
	}
	t.cfg = cfg
	return sysname, nil
}

func (t *Touch) Config() TouchConfig { return t.cfg }

// Tap touches (x, y) for duration with a fresh tracking id and lifts.
func (t *Touch) Tap(x, y uint32, duration time.Duration) error {
	if !t.Online() {
		return nil
	}
	px, err := axisValue("x", x)
	if err != nil {
		return err
	}
	py, err := axisValue("y", y)
	if err != nil {
		return err
	}
	id := t.trackingID
	t.trackingID = (t.trackingID + 1) & 0xffff

	err = t.emit(
		event{evcode.EvAbs, evcode.AbsMTTrackingID, id},
		event{evcode.EvAbs, evcode.AbsMTPositionX, px},
		event{evcode.EvAbs, evcode.AbsMTPositionY, py},
		event{evcode.EvKey, evcode.BtnTouch, 1},
		event{evcode.EvAbs, evcode.AbsX, px},
		event{evcode.EvAbs, evcode.AbsY, py},
	)
	if err != nil {
		return err
	}
	t.reg.opts.Sleep(duration)
	return t.emit(
		event{evcode.EvAbs, evcode.AbsMTTrackingID, -1},
		event{evcode.EvKey, evcode.BtnTouch, 0},
	)
}
