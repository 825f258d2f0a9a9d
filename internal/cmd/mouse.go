package cmd

import (
	"log/slog"

	"github.com/lundmar/input-emulator/internal/keymap"
	"github.com/lundmar/input-emulator/internal/log"
)

type Mouse struct {
	Move   MouseMove   `cmd:"" help:"Move the pointer relative to its position"`
	Click  MouseClick  `cmd:"" help:"Click a button"`
	Down   MouseDown   `cmd:"" help:"Press and hold a button"`
	Up     MouseUp     `cmd:"" help:"Release a button"`
	Scroll MouseScroll `cmd:"" help:"Turn the wheel, positive ticks scroll up"`
}

type MouseMove struct {
	DX int32 `arg:"" help:"Horizontal distance; put -- before negative values"`
	DY int32 `arg:"" help:"Vertical distance"`
}

func (c *MouseMove) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	return newClient(g, rawLogger).MouseMove(c.DX, c.DY)
}

type ButtonArg struct {
	Button string `arg:"" help:"left, right, middle, side, extra or a button code"`
}

func (b ButtonArg) code() (int32, error) {
	code, err := keymap.Button(b.Button)
	return int32(code), err
}

type MouseClick struct {
	ButtonArg `embed:""`
}

func (c *MouseClick) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	btn, err := c.code()
	if err != nil {
		return err
	}
	return newClient(g, rawLogger).MouseClick(btn)
}

type MouseDown struct {
	ButtonArg `embed:""`
}

func (c *MouseDown) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	btn, err := c.code()
	if err != nil {
		return err
	}
	return newClient(g, rawLogger).MouseButtonDown(btn)
}

type MouseUp struct {
	ButtonArg `embed:""`
}

func (c *MouseUp) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	btn, err := c.code()
	if err != nil {
		return err
	}
	return newClient(g, rawLogger).MouseButtonUp(btn)
}

type MouseScroll struct {
	Ticks int32 `arg:"" help:"Wheel ticks"`
}

func (c *MouseScroll) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	return newClient(g, rawLogger).MouseScroll(c.Ticks)
}
