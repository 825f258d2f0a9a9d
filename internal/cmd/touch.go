package cmd

import (
	"log/slog"
	"time"

	"github.com/lundmar/input-emulator/internal/log"
)

type Touch struct {
	Tap TouchTap `cmd:"" help:"Tap the screen"`
}

type TouchTap struct {
	X        uint32        `arg:"" help:"Absolute X"`
	Y        uint32        `arg:"" help:"Absolute Y"`
	Duration time.Duration `help:"How long the finger stays down" default:"15ms"`
}

func (c *TouchTap) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	return newClient(g, rawLogger).TouchTap(c.X, c.Y, c.Duration)
}
