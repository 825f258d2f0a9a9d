package device

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lundmar/input-emulator/pkg/apitypes"
)

const (
	// DefaultDrainDelay gives readers time to consume the last events
	// before a device disappears.
	DefaultDrainDelay = time.Second
	DefaultClickHold  = time.Millisecond
)

// Keymap maps a character to the key stroke that types it.
type Keymap interface {
	Lookup(r rune) (key, modifier uint16, ok bool)
}

type Options struct {
	DrainDelay time.Duration
	ClickHold  time.Duration
	Keymap     Keymap
	// Sleep replaces time.Sleep for every hold and delay.
	Sleep func(time.Duration)
}

// Registry tracks the device sessions of one server process.
type Registry struct {
	Keyboard *Keyboard
	Mouse    *Mouse
	Touch    *Touch

	driver Driver
	opts   Options
	logger *slog.Logger
	refs   int
}

func NewRegistry(driver Driver, opts Options, logger *slog.Logger) *Registry {
	if opts.DrainDelay == 0 {
		opts.DrainDelay = DefaultDrainDelay
	}
	if opts.ClickHold == 0 {
		opts.ClickHold = DefaultClickHold
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	r := &Registry{driver: driver, opts: opts, logger: logger}
	r.Keyboard = &Keyboard{session: r.newSession(apitypes.ClassKeyboard)}
	r.Mouse = &Mouse{session: r.newSession(apitypes.ClassMouse)}
	r.Touch = &Touch{session: r.newSession(apitypes.ClassTouch)}
	return r
}

func (r *Registry) newSession(c apitypes.Class) session {
	return session{class: c, reg: r, logger: r.logger.With("class", c.String())}
}

// RefCount is the number of online sessions.
func (r *Registry) RefCount() int { return r.refs }

// Destroy tears down the session for c, or all of them for ClassAll.
// Offline sessions are skipped.
func (r *Registry) Destroy(c apitypes.Class) error {
	switch c {
	case apitypes.ClassKeyboard:
		return r.Keyboard.Destroy()
	case apitypes.ClassMouse:
		return r.Mouse.Destroy()
	case apitypes.ClassTouch:
		return r.Touch.Destroy()
	case apitypes.ClassAll:
		return errors.Join(r.Keyboard.Destroy(), r.Mouse.Destroy(), r.Touch.Destroy())
	default:
		return fmt.Errorf("%w: %d", apitypes.ErrUnknownClass, uint32(c))
	}
}

// Status describes every online session in class order.
func (r *Registry) Status() []apitypes.StatusLine {
	var lines []apitypes.StatusLine
	if r.Keyboard.Online() {
		lines = append(lines, r.Keyboard.status(
			apitypes.Attr{Key: "type-delay", Value: r.Keyboard.typeDelay.String()},
		))
	}
	if r.Mouse.Online() {
		lines = append(lines, r.Mouse.status(
			apitypes.Attr{Key: "x-max", Value: fmt.Sprint(r.Mouse.cfg.XMax)},
			apitypes.Attr{Key: "y-max", Value: fmt.Sprint(r.Mouse.cfg.YMax)},
		))
	}
	if r.Touch.Online() {
		lines = append(lines, r.Touch.status(
			apitypes.Attr{Key: "x-max", Value: fmt.Sprint(r.Touch.cfg.XMax)},
			apitypes.Attr{Key: "y-max", Value: fmt.Sprint(r.Touch.cfg.YMax)},
			apitypes.Attr{Key: "slots", Value: fmt.Sprint(r.Touch.cfg.Slots)},
		))
	}
	return lines
}
