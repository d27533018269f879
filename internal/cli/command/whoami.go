package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

// WhoamiCommand returns the whoami command, which verifies the stored
// token against the server and reports the session owner.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Aliases: []string{"session"},
		Usage:   "Show the current session, verifying the stored token",
		Action:  whoamiAction,
	}
}

func whoamiAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()
	return runWhoami(c, env)
}

func runWhoami(c *cli.Context, env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	spin("checking session", func() error {
		env.Session.CheckSession(ctx)
		return nil
	})

	state := env.Session.Snapshot()
	if state.Error != nil {
		return cli.Exit(fmt.Sprintf("session check failed: %s", state.Error.Message), 1)
	}
	if !state.IsAuthenticated() {
		return cli.Exit("not logged in", 1)
	}

	if env.Config.Output == "table" {
		fmt.Fprintf(c.App.Writer, "Logged in as %s.\n", displayName(state.User))
		return nil
	}
	return env.Formatter().Format(c.App.Writer, state.User)
}
