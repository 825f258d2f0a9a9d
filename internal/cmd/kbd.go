package cmd

import (
	"log/slog"

	"github.com/lundmar/input-emulator/internal/keymap"
	"github.com/lundmar/input-emulator/internal/log"
)

type Kbd struct {
	Type    KbdType    `cmd:"" help:"Type text"`
	Key     KbdKey     `cmd:"" help:"Stroke a key: press, hold, release"`
	Keydown KbdKeyDown `cmd:"" help:"Press and hold a key"`
	Keyup   KbdKeyUp   `cmd:"" help:"Release a key"`
}

type KbdType struct {
	Text string `arg:"" help:"Text to type using the server's layout"`
}

func (c *KbdType) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	return newClient(g, rawLogger).KeyboardType(keymap.Normalize(c.Text))
}

// KeyArg names a key by character, alias such as "enter" or "f5", or
// decimal code.
type KeyArg struct {
	Key    string `arg:"" help:"Character, key name or key code"`
	Layout string `help:"Layout used to resolve a character" default:"us" env:"INPUT_EMULATOR_LAYOUT"`
}

func (k KeyArg) resolve() (uint32, error) {
	l, err := keymap.Load(k.Layout)
	if err != nil {
		return 0, err
	}
	code, err := l.Resolve(keymap.Normalize(k.Key))
	return uint32(code), err
}

type KbdKey struct {
	KeyArg `embed:""`
}

func (c *KbdKey) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	code, err := c.resolve()
	if err != nil {
		return err
	}
	return newClient(g, rawLogger).KeyboardKey(code)
}

type KbdKeyDown struct {
	KeyArg `embed:""`
}

func (c *KbdKeyDown) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	code, err := c.resolve()
	if err != nil {
		return err
	}
	return newClient(g, rawLogger).KeyboardKeyDown(code)
}

type KbdKeyUp struct {
	KeyArg `embed:""`
}

func (c *KbdKeyUp) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	code, err := c.resolve()
	if err != nil {
		return err
	}
	return newClient(g, rawLogger).KeyboardKeyUp(code)
}
