package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lundmar/input-emulator/internal/daemonctl"
	"github.com/lundmar/input-emulator/internal/device"
	"github.com/lundmar/input-emulator/internal/keymap"
	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/internal/server/api"
	"github.com/lundmar/input-emulator/internal/server/api/handler"
	"github.com/lundmar/input-emulator/internal/uinput"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

// DeviceOptions configures the device a start request brings online.
type DeviceOptions struct {
	XMax      uint32        `short:"x" help:"Maximum absolute X (mouse, touch)" default:"1024"`
	YMax      uint32        `short:"y" help:"Maximum absolute Y (mouse, touch)" default:"768"`
	Slots     uint32        `short:"s" help:"Number of touch slots" default:"4"`
	TypeDelay time.Duration `short:"d" help:"How long each key stroke is held (kbd)" default:"40ms"`
}

// ServerOptions configures a server process. They only take effect when
// the command ends up starting one.
type ServerOptions struct {
	Layout        string        `help:"Keyboard layout name (us, dk) or layout file" default:"us" env:"INPUT_EMULATOR_LAYOUT"`
	SettleTimeout time.Duration `help:"Upper bound on waiting for udev to publish a new device" default:"1s" env:"INPUT_EMULATOR_SETTLE_TIMEOUT"`
	DrainDelay    time.Duration `help:"Pause before a device is destroyed" default:"1s" env:"INPUT_EMULATOR_DRAIN_DELAY"`
	UinputPath    string        `help:"uinput device node" default:"/dev/uinput" env:"INPUT_EMULATOR_UINPUT"`
}

func (o ServerOptions) args() []string {
	return []string{
		"--layout", o.Layout,
		"--settle-timeout", o.SettleTimeout.String(),
		"--drain-delay", o.DrainDelay.String(),
		"--uinput-path", o.UinputPath,
	}
}

// Serve runs the server in the foreground. The background launch of start
// re-executes the binary with this command.
type Serve struct {
	Device        string `arg:"" enum:"kbd,mouse,touch" help:"Device to bring online before serving"`
	DeviceOptions `embed:""`
	ServerOptions `embed:""`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	handleSignals(logger)

	class, err := apitypes.ParseClass(s.Device)
	if err != nil {
		return err
	}
	if daemonctl.Ready(g.Socket) {
		return fmt.Errorf("%s: %w", g.Socket, api.ErrAlreadyRunning)
	}

	km, err := keymap.Load(s.Layout)
	if err != nil {
		return err
	}
	drv := uinput.New(logger)
	drv.Path = s.UinputPath
	drv.SettleTimeout = s.SettleTimeout

	reg := device.NewRegistry(drv, device.Options{DrainDelay: s.DrainDelay, Keymap: km}, logger)
	srv, err := newServer(reg, g.Socket, logger, rawLogger, handler.RegisterAll)
	if err != nil {
		return err
	}

	// The device exists before the socket is bound so a client that sees
	// the server can use it right away.
	if err := startDevice(reg, class, s.DeviceOptions); err != nil {
		return err
	}
	if err := srv.Open(); err != nil {
		return errors.Join(err, reg.Destroy(apitypes.ClassAll))
	}
	logger.Info("server ready", "socket", g.Socket, "device", class.String(), "layout", km.Name)
	return srv.Serve()
}

// newServer builds the API server and refuses to run with a request type
// left unhandled.
func newServer(reg *device.Registry, socket string, logger *slog.Logger, rawLogger log.RawLogger,
	register func(*api.Router, *device.Registry),
) (*api.Server, error) {
	srv := api.New(reg, socket, logger, rawLogger)
	register(srv.Router(), reg)
	if missing := srv.Router().Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("no handler for %v", missing)
	}
	return srv, nil
}

func startDevice(reg *device.Registry, class apitypes.Class, o DeviceOptions) error {
	var err error
	switch class {
	case apitypes.ClassKeyboard:
		_, err = reg.Keyboard.Create(o.TypeDelay)
	case apitypes.ClassMouse:
		_, err = reg.Mouse.Create(device.MouseConfig{XMax: o.XMax, YMax: o.YMax})
	case apitypes.ClassTouch:
		_, err = reg.Touch.Create(device.TouchConfig{XMax: o.XMax, YMax: o.YMax, Slots: o.Slots})
	default:
		err = fmt.Errorf("%w: %s", apitypes.ErrUnknownClass, class)
	}
	return err
}

// handleSignals exits on SIGINT, SIGHUP and SIGTERM without tearing the
// devices down. SIGPIPE is ignored.
func handleSignals(logger *slog.Logger) {
	signal.Ignore(syscall.SIGPIPE)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	go func() {
		sig := <-ch
		logger.Info("received signal, exiting", "signal", sig.String())
		os.Exit(0)
	}()
}
