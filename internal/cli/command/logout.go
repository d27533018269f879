package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "End the server session and forget the stored token",
		Action: logoutAction,
	}
}

func logoutAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()
	return runLogout(c, env)
}

func runLogout(c *cli.Context, env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	spin("logging out", func() error {
		env.Session.Logout(ctx)
		return nil
	})

	state := env.Session.Snapshot()
	if state.Error != nil {
		return cli.Exit(fmt.Sprintf("logout failed: %s", state.Error.Message), 1)
	}

	fmt.Fprintln(c.App.Writer, "Logged out.")
	return nil
}
