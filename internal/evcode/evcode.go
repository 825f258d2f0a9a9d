// Package evcode mirrors the subset of linux/input-event-codes.h used by
// the emulated devices.
package evcode

// Event types.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
)

const SynReport uint16 = 0

// Relative axes.
const (
	RelX     uint16 = 0x00
	RelY     uint16 = 0x01
	RelWheel uint16 = 0x08
)

// Absolute axes.
const (
	AbsX            uint16 = 0x00
	AbsY            uint16 = 0x01
	AbsMTSlot       uint16 = 0x2f
	AbsMTPositionX  uint16 = 0x35
	AbsMTPositionY  uint16 = 0x36
	AbsMTTrackingID uint16 = 0x39
)

// Buttons.
const (
	BtnLeft   uint16 = 0x110
	BtnRight  uint16 = 0x111
	BtnMiddle uint16 = 0x112
	BtnSide   uint16 = 0x113
	BtnExtra  uint16 = 0x114
	BtnTouch  uint16 = 0x14a
)

// Keys.
const (
	KeyEsc        uint16 = 1
	Key1          uint16 = 2
	Key2          uint16 = 3
	Key3          uint16 = 4
	Key4          uint16 = 5
	Key5          uint16 = 6
	Key6          uint16 = 7
	Key7          uint16 = 8
	Key8          uint16 = 9
	Key9          uint16 = 10
	Key0          uint16 = 11
	KeyMinus      uint16 = 12
	KeyEqual      uint16 = 13
	KeyBackspace  uint16 = 14
	KeyTab        uint16 = 15
	KeyQ          uint16 = 16
	KeyW          uint16 = 17
	KeyE          uint16 = 18
	KeyR          uint16 = 19
	KeyT          uint16 = 20
	KeyY          uint16 = 21
	KeyU          uint16 = 22
	KeyI          uint16 = 23
	KeyO          uint16 = 24
	KeyP          uint16 = 25
	KeyLeftBrace  uint16 = 26
	KeyRightBrace uint16 = 27
	KeyEnter      uint16 = 28
	KeyLeftCtrl   uint16 = 29
	KeyA          uint16 = 30
	KeyS          uint16 = 31
	KeyD          uint16 = 32
	KeyF          uint16 = 33
	KeyG          uint16 = 34
	KeyH          uint16 = 35
	KeyJ          uint16 = 36
	KeyK          uint16 = 37
	KeyL          uint16 = 38
	KeySemicolon  uint16 = 39
	KeyApostrophe uint16 = 40
	KeyGrave      uint16 = 41
	KeyLeftShift  uint16 = 42
	KeyBackslash  uint16 = 43
	KeyZ          uint16 = 44
	KeyX          uint16 = 45
	KeyC          uint16 = 46
	KeyV          uint16 = 47
	KeyB          uint16 = 48
	KeyN          uint16 = 49
	KeyM          uint16 = 50
	KeyComma      uint16 = 51
	KeyDot        uint16 = 52
	KeySlash      uint16 = 53
	KeyRightShift uint16 = 54
	KeyLeftAlt    uint16 = 56
	KeySpace      uint16 = 57
	KeyCapsLock   uint16 = 58
	KeyF1         uint16 = 59
	KeyF2         uint16 = 60
	KeyF3         uint16 = 61
	KeyF4         uint16 = 62
	KeyF5         uint16 = 63
	KeyF6         uint16 = 64
	KeyF7         uint16 = 65
	KeyF8         uint16 = 66
	KeyF9         uint16 = 67
	KeyF10        uint16 = 68
	Key102nd      uint16 = 86
	KeyF11        uint16 = 87
	KeyF12        uint16 = 88
	KeyRightCtrl  uint16 = 97
	KeyRightAlt   uint16 = 100
	KeyHome       uint16 = 102
	KeyUp         uint16 = 103
	KeyPageUp     uint16 = 104
	KeyLeft       uint16 = 105
	KeyRight      uint16 = 106
	KeyEnd        uint16 = 107
	KeyDown       uint16 = 108
	KeyPageDown   uint16 = 109
	KeyInsert     uint16 = 110
	KeyDelete     uint16 = 111
	KeyLeftMeta   uint16 = 125
	KeyCompose    uint16 = 127
	KeyHelp       uint16 = 138
	KeyPlayPause  uint16 = 164
	KeyStopCD     uint16 = 166
	KeyF13        uint16 = 183
	KeyF14        uint16 = 184
	KeyF15        uint16 = 185
	KeyF16        uint16 = 186
	KeyF17        uint16 = 187
	KeyF18        uint16 = 188
	KeyF19        uint16 = 189
	KeyF20        uint16 = 190
	KeyMicMute    uint16 = 248
	KeyOK         uint16 = 0x160
	KeyData       uint16 = 0x277

	// KeyMax is the highest key or button code the kernel accepts.
	KeyMax uint16 = 0x2ff
)

// KeyboardKeys returns every key code a keyboard device advertises: the
// classic block up to KEY_MICMUTE and the extended block KEY_OK..KEY_DATA.
// Button codes in between are left out.
func KeyboardKeys() []uint16 {
	keys := make([]uint16, 0, int(KeyMicMute)+int(KeyData-KeyOK)+1)
	for c := KeyEsc; c <= KeyMicMute; c++ {
		keys = append(keys, c)
	}
	for c := KeyOK; c <= KeyData; c++ {
		keys = append(keys, c)
	}
	return keys
}

// MouseButtons lists the buttons a mouse device advertises.
var MouseButtons = []uint16{BtnLeft, BtnMiddle, BtnRight, BtnSide, BtnExtra}
