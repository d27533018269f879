package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/cli/output"
	"github.com/fittrackhq/fittrack-go/internal/domain"
)

// requestTimeout bounds one command's network round-trip.
const requestTimeout = 30 * time.Second

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate against the fittrack server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "account username",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "account password (prompted when omitted)",
			},
		},
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()
	return runLogin(c, env)
}

func runLogin(c *cli.Context, env *Env) error {
	creds := domain.Credentials{
		Username: c.String("username"),
		Password: c.String("password"),
	}

	reader := bufio.NewReader(os.Stdin)
	if creds.Username == "" {
		fmt.Fprint(c.App.Writer, "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		creds.Username = strings.TrimSpace(line)
	}
	if creds.Password == "" {
		fmt.Fprint(c.App.Writer, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		creds.Password = strings.TrimSpace(line)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	spin("logging in", func() error {
		env.Session.Login(ctx, creds)
		return nil
	})

	state := env.Session.Snapshot()
	if state.Error != nil {
		return cli.Exit(fmt.Sprintf("login failed: %s", state.Error.Message), 1)
	}

	fmt.Fprintf(c.App.Writer, "Logged in as %s.\n", displayName(state.User))
	return nil
}

// displayName picks a printable identifier from the user record and
// sanitizes it, since it is server-supplied display text.
func displayName(user *domain.User) string {
	if user == nil {
		return "unknown"
	}
	if user.Username != "" {
		return output.Sanitize(user.Username)
	}
	return output.Sanitize(user.ID)
}
