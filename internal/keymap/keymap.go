// Package keymap translates characters and key names into Linux key codes.
package keymap

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/lundmar/input-emulator/internal/evcode"
)

const DefaultLayout = "us"

var (
	ErrUnknownLayout = errors.New("unknown keyboard layout")
	ErrUnknownKey    = errors.New("unknown key")
	ErrUnknownButton = errors.New("unknown mouse button")
)

// Mapping is the key stroke producing a character. Modifier is zero when the
// key is pressed on its own.
type Mapping struct {
	Key      uint16 `json:"key" yaml:"key" toml:"key"`
	Modifier uint16 `json:"modifier,omitempty" yaml:"modifier,omitempty" toml:"modifier"`
}

// Layout maps characters and key names to key codes.
type Layout struct {
	Name    string
	chars   map[rune]Mapping
	aliases map[string]uint16
}

func newLayout(name string) *Layout {
	return &Layout{
		Name:    name,
		chars:   make(map[rune]Mapping),
		aliases: maps.Clone(commonAliases),
	}
}

func (l *Layout) clone(name string) *Layout {
	return &Layout{Name: name, chars: maps.Clone(l.chars), aliases: maps.Clone(l.aliases)}
}

// Lookup returns the key stroke for r.
func (l *Layout) Lookup(r rune) (key, modifier uint16, ok bool) {
	m, ok := l.chars[r]
	return m.Key, m.Modifier, ok
}

// Alias returns the key code for a named key such as "enter" or "f5".
func (l *Layout) Alias(name string) (uint16, bool) {
	k, ok := l.aliases[strings.ToLower(name)]
	return k, ok
}

// Aliases returns the known key names in sorted order.
func (l *Layout) Aliases() []string {
	return slices.Sorted(maps.Keys(l.aliases))
}

// Resolve turns a command line key argument into a key code. The argument
// is tried as a single character, then as a key name, then as a decimal
// code.
func (l *Layout) Resolve(arg string) (uint16, error) {
	s := Normalize(arg)
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if key, _, ok := l.Lookup(r); ok {
			return key, nil
		}
	}
	if key, ok := l.Alias(s); ok {
		return key, nil
	}
	if n, err := strconv.ParseUint(s, 10, 16); err == nil && n > 0 {
		return uint16(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, arg)
}

// Normalize returns s in NFC so that decomposed input such as "å"
// matches the precomposed entries of a layout.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

var builtin = map[string]func() *Layout{
	"us": usLayout,
	"dk": dkLayout,
}

// Names lists the built-in layouts.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

// Get returns a built-in layout by name.
func Get(name string) (*Layout, error) {
	if name == "" {
		name = DefaultLayout
	}
	f, ok := builtin[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownLayout, name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

var commonAliases = func() map[string]uint16 {
	m := map[string]uint16{
		"alt":       evcode.KeyLeftAlt,
		"altgr":     evcode.KeyRightAlt,
		"backspace": evcode.KeyBackspace,
		"capslock":  evcode.KeyCapsLock,
		"compose":   evcode.KeyCompose,
		"ctrl":      evcode.KeyLeftCtrl,
		"delete":    evcode.KeyDelete,
		"down":      evcode.KeyDown,
		"end":       evcode.KeyEnd,
		"enter":     evcode.KeyEnter,
		"esc":       evcode.KeyEsc,
		"help":      evcode.KeyHelp,
		"home":      evcode.KeyHome,
		"insert":    evcode.KeyInsert,
		"left":      evcode.KeyLeft,
		"meta":      evcode.KeyLeftMeta,
		"playpause": evcode.KeyPlayPause,
		"pgdn":      evcode.KeyPageDown,
		"pgup":      evcode.KeyPageUp,
		"right":     evcode.KeyRight,
		"shift":     evcode.KeyLeftShift,
		"space":     evcode.KeySpace,
		"stopcd":    evcode.KeyStopCD,
		"tab":       evcode.KeyTab,
		"up":        evcode.KeyUp,
	}
	// Function key codes are not contiguous.
	for i := range 10 {
		m["f"+strconv.Itoa(i+1)] = evcode.KeyF1 + uint16(i)
	}
	m["f11"] = evcode.KeyF11
	m["f12"] = evcode.KeyF12
	for i := range 8 {
		m["f"+strconv.Itoa(i+13)] = evcode.KeyF13 + uint16(i)
	}
	return m
}()

var letterKeys = [26]uint16{
	evcode.KeyA, evcode.KeyB, evcode.KeyC, evcode.KeyD, evcode.KeyE, evcode.KeyF,
	evcode.KeyG, evcode.KeyH, evcode.KeyI, evcode.KeyJ, evcode.KeyK, evcode.KeyL,
	evcode.KeyM, evcode.KeyN, evcode.KeyO, evcode.KeyP, evcode.KeyQ, evcode.KeyR,
	evcode.KeyS, evcode.KeyT, evcode.KeyU, evcode.KeyV, evcode.KeyW, evcode.KeyX,
	evcode.KeyY, evcode.KeyZ,
}

var digitKeys = [10]uint16{
	evcode.Key0, evcode.Key1, evcode.Key2, evcode.Key3, evcode.Key4,
	evcode.Key5, evcode.Key6, evcode.Key7, evcode.Key8, evcode.Key9,
}

// qwerty fills in letters, digits and whitespace shared by all built-in
// layouts.
func qwerty(name string) *Layout {
	l := newLayout(name)
	for i, k := range letterKeys {
		l.chars[rune('a'+i)] = Mapping{Key: k}
		l.chars[rune('A'+i)] = Mapping{Key: k, Modifier: evcode.KeyLeftShift}
	}
	for i, k := range digitKeys {
		l.chars[rune('0'+i)] = Mapping{Key: k}
	}
	l.chars[' '] = Mapping{Key: evcode.KeySpace}
	l.chars['\n'] = Mapping{Key: evcode.KeyEnter}
	l.chars['\t'] = Mapping{Key: evcode.KeyTab}
	return l
}

func usLayout() *Layout {
	l := qwerty("us")
	shift := evcode.KeyLeftShift
	for r, m := range map[rune]Mapping{
		'!': {evcode.Key1, shift}, '@': {evcode.Key2, shift}, '#': {evcode.Key3, shift},
		'$': {evcode.Key4, shift}, '%': {evcode.Key5, shift}, '^': {evcode.Key6, shift},
		'&': {evcode.Key7, shift}, '*': {evcode.Key8, shift}, '(': {evcode.Key9, shift},
		')': {evcode.Key0, shift},
		'-': {evcode.KeyMinus, 0}, '_': {evcode.KeyMinus, shift},
		'=': {evcode.KeyEqual, 0}, '+': {evcode.KeyEqual, shift},
		'[': {evcode.KeyLeftBrace, 0}, '{': {evcode.KeyLeftBrace, shift},
		']': {evcode.KeyRightBrace, 0}, '}': {evcode.KeyRightBrace, shift},
		'\\': {evcode.KeyBackslash, 0}, '|': {evcode.KeyBackslash, shift},
		';': {evcode.KeySemicolon, 0}, ':': {evcode.KeySemicolon, shift},
		'\'': {evcode.KeyApostrophe, 0}, '"': {evcode.KeyApostrophe, shift},
		'`': {evcode.KeyGrave, 0}, '~': {evcode.KeyGrave, shift},
		',': {evcode.KeyComma, 0}, '<': {evcode.KeyComma, shift},
		'.': {evcode.KeyDot, 0}, '>': {evcode.KeyDot, shift},
		'/': {evcode.KeySlash, 0}, '?': {evcode.KeySlash, shift},
	} {
		l.chars[r] = m
	}
	return l
}

func dkLayout() *Layout {
	l := qwerty("dk")
	shift, altgr := evcode.KeyLeftShift, evcode.KeyRightAlt
	for r, m := range map[rune]Mapping{
		'!': {evcode.Key1, shift}, '"': {evcode.Key2, shift}, '#': {evcode.Key3, shift},
		'¤': {evcode.Key4, shift}, '%': {evcode.Key5, shift}, '&': {evcode.Key6, shift},
		'/': {evcode.Key7, shift}, '(': {evcode.Key8, shift}, ')': {evcode.Key9, shift},
		'=': {evcode.Key0, shift},
		'@': {evcode.Key2, altgr}, '£': {evcode.Key3, altgr}, '$': {evcode.Key4, altgr},
		'€': {evcode.Key5, altgr}, '{': {evcode.Key7, altgr}, '[': {evcode.Key8, altgr},
		']': {evcode.Key9, altgr}, '}': {evcode.Key0, altgr},
		'+': {evcode.KeyMinus, 0}, '?': {evcode.KeyMinus, shift},
		'´': {evcode.KeyEqual, 0}, '`': {evcode.KeyEqual, shift}, '|': {evcode.KeyEqual, altgr},
		'å': {evcode.KeyLeftBrace, 0}, 'Å': {evcode.KeyLeftBrace, shift},
		'¨': {evcode.KeyRightBrace, 0}, '^': {evcode.KeyRightBrace, shift}, '~': {evcode.KeyRightBrace, altgr},
		'æ': {evcode.KeySemicolon, 0}, 'Æ': {evcode.KeySemicolon, shift},
		'ø': {evcode.KeyApostrophe, 0}, 'Ø': {evcode.KeyApostrophe, shift},
		'½': {evcode.KeyGrave, 0}, '§': {evcode.KeyGrave, shift},
		'\'': {evcode.KeyBackslash, 0}, '*': {evcode.KeyBackslash, shift},
		'<': {evcode.Key102nd, 0}, '>': {evcode.Key102nd, shift}, '\\': {evcode.Key102nd, altgr},
		',': {evcode.KeyComma, 0}, ';': {evcode.KeyComma, shift},
		'.': {evcode.KeyDot, 0}, ':': {evcode.KeyDot, shift},
		'-': {evcode.KeySlash, 0}, '_': {evcode.KeySlash, shift},
	} {
		l.chars[r] = m
	}
	return l
}

var buttons = map[string]uint16{
	"left":   evcode.BtnLeft,
	"right":  evcode.BtnRight,
	"middle": evcode.BtnMiddle,
	"side":   evcode.BtnSide,
	"extra":  evcode.BtnExtra,
}

// ButtonNames lists the mouse button names accepted by Button.
func ButtonNames() []string {
	return slices.Sorted(maps.Keys(buttons))
}

// Button resolves a mouse button name or decimal code.
func Button(name string) (uint16, error) {
	if b, ok := buttons[strings.ToLower(name)]; ok {
		return b, nil
	}
	if n, err := strconv.ParseUint(name, 0, 16); err == nil && n > 0 {
		return uint16(n), nil
	}
	return 0, fmt.Errorf("%w: %q (known: %s)", ErrUnknownButton, name, strings.Join(ButtonNames(), ", "))
}
