package command

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/cli/config"
	"github.com/fittrackhq/fittrack-go/internal/cli/repl"
	"github.com/fittrackhq/fittrack-go/internal/infra/buildinfo"
	"github.com/fittrackhq/fittrack-go/internal/infra/confloader"
	"github.com/fittrackhq/fittrack-go/internal/infra/shutdown"
	"github.com/fittrackhq/fittrack-go/internal/telemetry/logger"
)

// ReplCommand returns the interactive-mode command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start an interactive session",
		Action:  replAction,
	}
}

func replAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Commands dispatched from the loop re-resolve config themselves, so
	// the watcher only has to announce that edits will take effect.
	configPath := c.String("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	watcher, err := confloader.NewWatcher(configPath, log)
	if err == nil {
		watcher.OnChange(func(path string) {
			fmt.Fprintf(c.App.Writer, "\nconfig changed, applies to the next command\n")
		})
		go watcher.Start()
	}

	inner := App()
	inner.Commands = withoutRepl(inner.Commands)
	// A failed command should not kill the session.
	inner.ExitErrHandler = func(*cli.Context, error) {}

	passthrough := passthroughFlags(c)
	loop := repl.New(
		func(args []string) error {
			return inner.Run(append(append([]string{"fittrack"}, passthrough...), args...))
		},
		repl.WithHistoryFile(filepath.Join(cfg.DataDir, "history")),
	)

	handler := shutdown.NewHandler(5 * time.Second)
	if watcher != nil {
		handler.OnShutdown(func(context.Context) error { return watcher.Stop() })
	}
	handler.Watch()
	defer handler.Trigger()

	fmt.Fprintf(c.App.Writer, "fittrack %s interactive mode. Type help for commands.\n", buildinfo.Version)
	return loop.Run()
}

// passthroughFlags carries the outer invocation's global flags into each
// dispatched command line.
func passthroughFlags(c *cli.Context) []string {
	var args []string
	for _, name := range []string{"server", "config", "output", "store"} {
		if v := c.String(name); v != "" {
			args = append(args, "--"+name, v)
		}
	}
	if c.Bool("verbose") {
		args = append(args, "--verbose")
	}
	return args
}

func withoutRepl(commands []*cli.Command) []*cli.Command {
	out := make([]*cli.Command, 0, len(commands))
	for _, cmd := range commands {
		if cmd.Name != "repl" {
			out = append(out, cmd)
		}
	}
	return out
}
