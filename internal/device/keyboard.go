package device

import (
	"time"

	"github.com/lundmar/input-emulator/internal/evcode"
)

const DefaultTypeDelay = 40 * time.Millisecond

type Keyboard struct {
	session
	typeDelay time.Duration
}

// Create brings the keyboard online. typeDelay is how long each stroke
// holds its key.
func (k *Keyboard) Create(typeDelay time.Duration) (string, error) {
	sysname, err := k.create(Capabilities{
		Name:    "Keyboard emulator",
		Vendor:  0x1234,
		Product: 0x5678,
		Version: 1,
		Keys:    evcode.KeyboardKeys(),
	})
	if err != nil {
		return "", err
	}
	k.typeDelay = typeDelay
	return sysname, nil
}

func (k *Keyboard) TypeDelay() time.Duration { return k.typeDelay }

func (k *Keyboard) Press(key uint16) error {
	return k.emit(event{evcode.EvKey, key, 1})
}

func (k *Keyboard) Release(key uint16) error {
	return k.emit(event{evcode.EvKey, key, 0})
}

// Stroke presses key, holds it for the type delay and releases it.
func (k *Keyboard) Stroke(key uint16) error {
	if !k.Online() {
		return nil
	}
	if err := k.Press(key); err != nil {
		return err
	}
	k.reg.opts.Sleep(k.typeDelay)
	return k.Release(key)
}

// Type strokes every character of text that the keymap knows. Modifiers
// are held around their stroke. Unknown characters are skipped and
// returned.
func (k *Keyboard) Type(text string) (skipped []rune, err error) {
	if !k.Online() {
		return nil, nil
	}
	km := k.reg.opts.Keymap
	for _, r := range text {
		var key, mod uint16
		ok := false
		if km != nil {
			key, mod, ok = km.Lookup(r)
		}
		if !ok {
			k.logger.Warn("no key for character, skipping", "char", string(r), "codepoint", int(r))
			skipped = append(skipped, r)
			continue
		}
		if mod != 0 {
			if err := k.Press(mod); err != nil {
				return skipped, err
			}
		}
		if err := k.Stroke(key); err != nil {
			return skipped, err
		}
		if mod != 0 {
			if err := k.Release(mod); err != nil {
				return skipped, err
			}
		}
	}
	return skipped, nil
}
