package device_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/evcode"
	ietesting "github.com/lundmar/input-emulator/internal/testing"
)

func emit(typ, code uint16, value int32) ietesting.Record {
	return ietesting.Record{Op: "emit", Type: typ, Code: code, Value: value}
}

func sleep(d time.Duration) ietesting.Record {
	return ietesting.Record{Op: "sleep", Delay: d}
}

var syn = emit(evcode.EvSyn, evcode.SynReport, 0)

// stripped drops fields that vary between runs so records compare by value.
func stripped(recs []ietesting.Record) []ietesting.Record {
	out := make([]ietesting.Record, len(recs))
	for i, r := range recs {
		r.Sysname = ""
		out[i] = r
	}
	return out
}

func TestKeyboardActions(t *testing.T) {
	tests := []struct {
		name string
		do   func(k *device.Keyboard) error
		want []ietesting.Record
	}{
		{
			name: "press",
			do:   func(k *device.Keyboard) error { return k.Press(evcode.KeyA) },
			want: []ietesting.Record{emit(evcode.EvKey, evcode.KeyA, 1), syn},
		},
		{
			name: "release",
			do:   func(k *device.Keyboard) error { return k.Release(evcode.KeyA) },
			want: []ietesting.Record{emit(evcode.EvKey, evcode.KeyA, 0), syn},
		},
		{
			name: "stroke holds type delay",
			do:   func(k *device.Keyboard) error { return k.Stroke(evcode.KeyA) },
			want: []ietesting.Record{
				emit(evcode.EvKey, evcode.KeyA, 1), syn,
				sleep(25 * time.Millisecond),
				emit(evcode.EvKey, evcode.KeyA, 0), syn,
			},
		},
		{
			name: "type holds modifier around stroke",
			do: func(k *device.Keyboard) error {
				skipped, err := k.Type("Aé")
				assert.Equal(t, []rune{'é'}, skipped)
				return err
			},
			want: []ietesting.Record{
				emit(evcode.EvKey, evcode.KeyLeftShift, 1), syn,
				emit(evcode.EvKey, evcode.KeyA, 1), syn,
				sleep(25 * time.Millisecond),
				emit(evcode.EvKey, evcode.KeyA, 0), syn,
				emit(evcode.EvKey, evcode.KeyLeftShift, 0), syn,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, drv := newRegistry(t)
			_, err := reg.Keyboard.Create(25 * time.Millisecond)
			require.NoError(t, err)
			drv.Reset()

			require.NoError(t, tt.do(reg.Keyboard))
			assert.Equal(t, tt.want, stripped(drv.Records()))
		})
	}
}

func TestMouseActions(t *testing.T) {
	tests := []struct {
		name string
		do   func(m *device.Mouse) error
		want []ietesting.Record
	}{
		{
			name: "move",
			do:   func(m *device.Mouse) error { return m.Move(-3, 7) },
			want: []ietesting.Record{emit(evcode.EvRel, evcode.RelX, -3), emit(evcode.EvRel, evcode.RelY, 7), syn},
		},
		{
			name: "click",
			do:   func(m *device.Mouse) error { return m.Click(evcode.BtnRight) },
			want: []ietesting.Record{
				emit(evcode.EvKey, evcode.BtnRight, 1), syn,
				sleep(device.DefaultClickHold),
				emit(evcode.EvKey, evcode.BtnRight, 0), syn,
			},
		},
		{
			name: "down",
			do:   func(m *device.Mouse) error { return m.Press(evcode.BtnLeft) },
			want: []ietesting.Record{emit(evcode.EvKey, evcode.BtnLeft, 1), syn},
		},
		{
			name: "up",
			do:   func(m *device.Mouse) error { return m.Release(evcode.BtnLeft) },
			want: []ietesting.Record{emit(evcode.EvKey, evcode.BtnLeft, 0), syn},
		},
		{
			name: "scroll",
			do:   func(m *device.Mouse) error { return m.Scroll(-2) },
			want: []ietesting.Record{emit(evcode.EvRel, evcode.RelWheel, -2), syn},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, drv := newRegistry(t)
			_, err := reg.Mouse.Create(device.MouseConfig{XMax: 1024, YMax: 768})
			require.NoError(t, err)
			drv.Reset()

			require.NoError(t, tt.do(reg.Mouse))
			assert.Equal(t, tt.want, stripped(drv.Records()))
		})
	}
}

func TestMouseCapabilities(t *testing.T) {
	reg, drv := newRegistry(t)
	_, err := reg.Mouse.Create(device.MouseConfig{XMax: 800, YMax: 600})
	require.NoError(t, err)

	creates := drv.Ops("create")
	require.Len(t, creates, 1)
	caps := creates[0].Caps
	assert.ElementsMatch(t, evcode.MouseButtons, caps.Keys)
	assert.Contains(t, caps.Rel, evcode.RelWheel)
	assert.Contains(t, caps.Abs, device.AbsAxis{Code: evcode.AbsX, Max: 800})
	assert.Contains(t, caps.Abs, device.AbsAxis{Code: evcode.AbsY, Max: 600})
}

func TestTouchTapUsesFreshTrackingIDs(t *testing.T) {
	reg, drv := newRegistry(t)
	_, err := reg.Touch.Create(device.TouchConfig{XMax: 1920, YMax: 1080, Slots: 4})
	require.NoError(t, err)
	drv.Reset()

	require.NoError(t, reg.Touch.Tap(100, 200, 15*time.Millisecond))
	require.NoError(t, reg.Touch.Tap(5, 6, time.Millisecond))

	want := []ietesting.Record{
		emit(evcode.EvAbs, evcode.AbsMTTrackingID, 0),
		emit(evcode.EvAbs, evcode.AbsMTPositionX, 100),
		emit(evcode.EvAbs, evcode.AbsMTPositionY, 200),
		emit(evcode.EvKey, evcode.BtnTouch, 1),
		emit(evcode.EvAbs, evcode.AbsX, 100),
		emit(evcode.EvAbs, evcode.AbsY, 200),
		syn,
		sleep(15 * time.Millisecond),
		emit(evcode.EvAbs, evcode.AbsMTTrackingID, -1),
		emit(evcode.EvKey, evcode.BtnTouch, 0),
		syn,
		emit(evcode.EvAbs, evcode.AbsMTTrackingID, 1),
	}
	got := stripped(drv.Records())
	require.GreaterOrEqual(t, len(got), len(want))
	assert.Equal(t, want, got[:len(want)])
}

func TestAxisBoundsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		call func(reg *device.Registry) error
	}{
		{"mouse x-max", func(reg *device.Registry) error {
			_, err := reg.Mouse.Create(device.MouseConfig{XMax: 3000000000, YMax: 768})
			return err
		}},
		{"mouse y-max", func(reg *device.Registry) error {
			_, err := reg.Mouse.Create(device.MouseConfig{XMax: 1024, YMax: math.MaxInt32 + 1})
			return err
		}},
		{"touch x-max", func(reg *device.Registry) error {
			_, err := reg.Touch.Create(device.TouchConfig{XMax: math.MaxUint32, YMax: 768, Slots: 4})
			return err
		}},
		{"touch without slots", func(reg *device.Registry) error {
			_, err := reg.Touch.Create(device.TouchConfig{XMax: 1024, YMax: 768})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, drv := newRegistry(t)
			err := tt.call(reg)
			require.ErrorIs(t, err, device.ErrOutOfRange)
			var fe *device.FatalError
			assert.False(t, errors.As(err, &fe))
			assert.Empty(t, drv.Ops("create"))
			assert.Equal(t, 0, reg.RefCount())
		})
	}
}

func TestAxisBoundsAtLimit(t *testing.T) {
	reg, drv := newRegistry(t)
	_, err := reg.Mouse.Create(device.MouseConfig{XMax: math.MaxInt32, YMax: 0})
	require.NoError(t, err)
	caps := drv.Ops("create")[0].Caps
	assert.Contains(t, caps.Abs, device.AbsAxis{Code: evcode.AbsX, Max: math.MaxInt32})
}

func TestTouchSlotAxisCountsFromZero(t *testing.T) {
	reg, drv := newRegistry(t)
	_, err := reg.Touch.Create(device.TouchConfig{XMax: 1920, YMax: 1080, Slots: 4})
	require.NoError(t, err)
	caps := drv.Ops("create")[0].Caps
	assert.Contains(t, caps.Abs, device.AbsAxis{Code: evcode.AbsMTSlot, Max: 3})
}

func TestTouchTapRejectsCoordinatesPastAxis(t *testing.T) {
	reg, drv := newRegistry(t)
	_, err := reg.Touch.Create(device.TouchConfig{XMax: 1920, YMax: 1080, Slots: 4})
	require.NoError(t, err)
	drv.Reset()

	require.ErrorIs(t, reg.Touch.Tap(math.MaxInt32+1, 10, time.Millisecond), device.ErrOutOfRange)
	require.ErrorIs(t, reg.Touch.Tap(10, math.MaxUint32, time.Millisecond), device.ErrOutOfRange)
	assert.Empty(t, drv.Records())

	// a rejected tap does not consume a tracking id
	require.NoError(t, reg.Touch.Tap(1, 1, time.Millisecond))
	assert.Equal(t, emit(evcode.EvAbs, evcode.AbsMTTrackingID, 0), stripped(drv.Records())[0])
}
