package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/cli/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Action: func(c *cli.Context) error {
					env, err := newEnv(c)
					if err != nil {
						return err
					}
					defer env.Close()
					return env.Formatter().Format(c.App.Writer, env.Config)
				},
			},
			{
				Name:  "path",
				Usage: "Show the config file path",
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if path == "" {
						path = config.DefaultConfigPath()
					}
					fmt.Fprintln(c.App.Writer, path)
					return nil
				},
			},
		},
	}
}
