// Package command defines the fittrack CLI command tree.
//
// It uses urfave/cli/v2 and supports both single-command mode and the
// interactive REPL.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/cli/config"
	"github.com/fittrackhq/fittrack-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "fittrack",
		Usage:   "fitness tracking from the command line",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			StatsCommand(),
			GoalCommand(),
			ConfigCommand(),
			ReplCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "fittrack API base URL",
			EnvVars: []string{"FITTRACK_SERVER"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path",
			EnvVars: []string{"FITTRACK_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "token store backend: file, badger, memory",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable debug logging",
		},
	}
}

// loadConfig resolves the effective configuration for a command run:
// defaults, then config file, then environment, then flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	overrides := map[string]any{}
	if v := c.String("server"); v != "" {
		overrides["server"] = v
	}
	if v := c.String("output"); v != "" {
		overrides["output"] = v
	}
	if v := c.String("store"); v != "" {
		overrides["store"] = v
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}
	return config.Load(c.String("config"), overrides)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
