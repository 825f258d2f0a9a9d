package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lundmar/input-emulator/internal/config"
	"github.com/lundmar/input-emulator/internal/configpaths"
	"github.com/lundmar/input-emulator/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"golang.org/x/term"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("input-emulator"),
		kong.Description(Description()),
		kong.UsageOnError(),
		kong.Help(helpPrinter),
		kong.Vars(config.Vars()),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	rawLogger := setupRawLogger(&cli, logger, &closeFiles)

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))
	ctx.Bind(cli.Globals())

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("INPUT_EMULATOR_CONFIG")
}

func setupRawLogger(cli *config.CLI, logger *slog.Logger, closeFiles *[]io.Closer) log.RawLogger {
	if cli.Log.RawFile != "" {
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			return log.NewRaw(nil)
		}
		*closeFiles = append(*closeFiles, f)
		return log.NewRaw(f)
	}
	if cli.Log.Level == "trace" {
		return log.NewRaw(os.Stderr)
	}
	return log.NewRaw(nil)
}

// helpPrinter wraps help to the terminal width and switches to the compact
// layout on narrow terminals. INPUT_EMULATOR_HELP_STYLE=plain disables both.
func helpPrinter(options kong.HelpOptions, ctx *kong.Context) error {
	style := strings.ToLower(os.Getenv("INPUT_EMULATOR_HELP_STYLE"))
	if style == "" {
		style = detectHelpStyle()
	}
	switch style {
	case "plain":
	case "compact":
		options.Compact = true
		options.WrapUpperBound = terminalWidth()
	default:
		options.WrapUpperBound = terminalWidth()
	}
	return kong.DefaultHelpPrinter(options, ctx)
}

func terminalWidth() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

func detectHelpStyle() string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fd = int(os.Stderr.Fd())
		if !term.IsTerminal(fd) {
			return "plain"
		}
	}

	if os.Getenv("TERM") == "dumb" {
		return "plain"
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return "compact"
	}

	const wideThreshold = 100
	if width >= wideThreshold {
		return "full"
	}
	return "compact"
}
