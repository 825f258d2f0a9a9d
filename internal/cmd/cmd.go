// Package cmd holds the kong commands of the input-emulator CLI.
package cmd

import (
	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/pkg/apiclient"
)

// Globals carries the top-level flags that commands need. main binds it
// into the kong context.
type Globals struct {
	Socket   string
	Config   string
	LogLevel string
	LogFile  string
}

func newClient(g *Globals, raw log.RawLogger) *apiclient.Client {
	c := apiclient.New(g.Socket)
	if raw != nil {
		c.Transport().Trace = raw.Log
	}
	return c
}
