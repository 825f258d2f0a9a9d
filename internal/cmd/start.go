package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lundmar/input-emulator/internal/configpaths"
	"github.com/lundmar/input-emulator/internal/daemonctl"
	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/pkg/apiclient"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

type Start struct {
	Device        string `arg:"" enum:"kbd,mouse,touch" help:"Device to start: kbd, mouse or touch"`
	DeviceOptions `embed:""`
	ServerOptions `embed:""`

	Foreground   bool          `short:"n" name:"no-daemonize" help:"Run the server in the foreground when none is running"`
	StartTimeout time.Duration `help:"How long to wait for a launched server" default:"5s" env:"INPUT_EMULATOR_START_TIMEOUT"`
}

// Run is called by Kong when the start command is executed.
func (c *Start) Run(logger *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	class, err := apitypes.ParseClass(c.Device)
	if err != nil {
		return err
	}
	client := newClient(g, rawLogger)

	err = c.request(client, class)
	if !errors.Is(err, apiclient.ErrServerNotRunning) {
		return err
	}
	if c.Foreground {
		s := &Serve{Device: c.Device, DeviceOptions: c.DeviceOptions, ServerOptions: c.ServerOptions}
		return s.Run(logger, rawLogger, g)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.StartTimeout)
	defer cancel()
	lock, err := daemonctl.AcquireLock(ctx, configpaths.LockPath())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	// Another start may have launched the server while we waited.
	err = c.request(client, class)
	if !errors.Is(err, apiclient.ErrServerNotRunning) {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	child, err := daemonctl.Launch(exe, c.ServeArgs(g))
	if err != nil {
		return err
	}
	logger.Debug("launched server", "pid", child.Pid())
	if err := daemonctl.WaitForServer(ctx, g.Socket, child, c.StartTimeout); err != nil {
		return err
	}
	logger.Info("started", "device", class.String())
	return nil
}

func (c *Start) request(client *apiclient.Client, class apitypes.Class) error {
	switch class {
	case apitypes.ClassKeyboard:
		return client.KeyboardStart(c.TypeDelay)
	case apitypes.ClassMouse:
		return client.MouseStart(c.XMax, c.YMax)
	case apitypes.ClassTouch:
		return client.TouchStart(c.XMax, c.YMax, c.Slots)
	}
	return fmt.Errorf("%w: %s", apitypes.ErrUnknownClass, class)
}

// ServeArgs rebuilds the command line of the background server.
func (c *Start) ServeArgs(g *Globals) []string {
	args := []string{
		"--socket", g.Socket,
		"--log.level", g.LogLevel,
	}
	if g.LogFile != "" {
		args = append(args, "--log.file", g.LogFile)
	}
	if g.Config != "" {
		args = append(args, "--config", g.Config)
	}
	args = append(args, c.ServerOptions.args()...)
	args = append(args,
		"-x", strconv.FormatUint(uint64(c.XMax), 10),
		"-y", strconv.FormatUint(uint64(c.YMax), 10),
		"-s", strconv.FormatUint(uint64(c.Slots), 10),
		"-d", c.TypeDelay.String(),
		c.Device,
	)
	return args
}
