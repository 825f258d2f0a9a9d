package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/lundmar/input-emulator/internal/log"
	"github.com/lundmar/input-emulator/pkg/apitypes"
)

type Status struct {
	Table bool `help:"Render a table, the default when stdout is a terminal" xor:"format"`
	Plain bool `help:"Print the status text as the server sends it" xor:"format"`
}

// Run is called by Kong when the status command is executed.
func (c *Status) Run(_ *slog.Logger, rawLogger log.RawLogger, g *Globals) error {
	text, err := newClient(g, rawLogger).Status()
	if err != nil {
		return err
	}
	useTable := c.Table || (!c.Plain && term.IsTerminal(int(os.Stdout.Fd())))
	return printStatus(os.Stdout, text, useTable)
}

func printStatus(w io.Writer, text string, useTable bool) error {
	if !useTable {
		_, err := fmt.Fprintf(w, "Online devices:\n%s", text)
		return err
	}
	lines, err := apitypes.ParseStatus(text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, renderStatus(lines))
	return err
}

func renderStatus(lines []apitypes.StatusLine) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Device", "Path", "Settings"})
	for _, l := range lines {
		settings := ""
		for i, a := range l.Attrs {
			if i > 0 {
				settings += " "
			}
			settings += a.Key + "=" + a.Value
		}
		tw.AppendRow(table.Row{l.Class.String(), l.Path, settings})
	}
	if len(lines) == 0 {
		tw.AppendRow(table.Row{"-", "no devices online", ""})
	}
	return tw.Render()
}
