// Package config defines the CLI structure and configuration for input-emulator.
package config

import (
	"github.com/lundmar/input-emulator/internal/cmd"
	"github.com/lundmar/input-emulator/internal/server/api"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"INPUT_EMULATOR_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"INPUT_EMULATOR_LOG_FILE"`
	RawFile string `help:"Raw frame log file path (default: none)" env:"INPUT_EMULATOR_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config string `help:"Config file (JSON, YAML or TOML)" type:"path" env:"INPUT_EMULATOR_CONFIG"`
	Socket string `help:"Abstract socket name of the server" default:"${socket}" env:"INPUT_EMULATOR_SOCKET"`

	Start  cmd.Start  `cmd:"" help:"Start a virtual device, launching the server when needed"`
	Stop   cmd.Stop   `cmd:"" help:"Stop a virtual device; the server exits when none are left"`
	Kbd    cmd.Kbd    `cmd:"" help:"Keyboard actions"`
	Mouse  cmd.Mouse  `cmd:"" help:"Mouse actions"`
	Touch  cmd.Touch  `cmd:"" help:"Touch actions"`
	Status cmd.Status `cmd:"" help:"List online devices"`
	Serve  cmd.Serve  `cmd:"" hidden:"" help:"Run the server in the foreground"`
}

// Vars are the kong interpolation variables used by CLI.
func Vars() map[string]string {
	return map[string]string{"socket": api.DefaultSocket}
}

// Globals extracts the flags that commands need from the parsed CLI.
func (c *CLI) Globals() *cmd.Globals {
	return &cmd.Globals{
		Socket:   c.Socket,
		Config:   c.Config,
		LogLevel: c.Log.Level,
		LogFile:  c.Log.File,
	}
}
