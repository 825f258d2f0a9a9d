package cmd

import (
	"log/slog"

	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

type Stop struct {
	Device string `arg:"" enum:"kbd,mouse,touch,all" help:"Device to stop: kbd, mouse, touch or all"`
}

// Run is called by Kong when the stop command is executed.
func (c *Stop) Run(logger *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	class, err := apitypes.ParseClass(c.Device)
	if err != nil {
		return err
	}
	if err := newClient(g, rawLogger).Stop(class); err != nil {
		return err
	}
	logger.Debug("stopped", "device", class.String())
	return nil
}
