// Package main provides the entry point for the fittrack CLI.
//
// fittrack talks to a fitness-tracking server: it authenticates, keeps
// the session token on disk, and shows workout stats and goals. It
// supports both single-command mode and an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/fittrackhq/fittrack-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
