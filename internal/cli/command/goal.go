package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/cli/output"
	"github.com/fittrackhq/fittrack-go/internal/domain"
)

// GoalCommand returns the goal subcommand group.
func GoalCommand() *cli.Command {
	return &cli.Command{
		Name:    "goal",
		Aliases: []string{"goals"},
		Usage:   "Manage fitness goals",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List goals",
				Action: goalListAction,
			},
			{
				Name:  "create",
				Usage: "Create a new goal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "goal name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "goal description",
					},
					&cli.StringFlag{
						Name:     "target",
						Aliases:  []string{"t"},
						Usage:    "target value (e.g. 100)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "unit",
						Usage:    "unit of measure (e.g. km)",
						Required: true,
					},
				},
				Action: goalCreateAction,
			},
		},
	}
}

func goalListAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()
	return runGoalList(c, env)
}

func runGoalList(c *cli.Context, env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var goals []domain.Goal
	err := spin("fetching goals", func() error {
		var err error
		goals, err = env.Fitness.ListGoals(ctx)
		return err
	})
	if err != nil {
		return cli.Exit(domain.MessageOf(err), 1)
	}

	if env.Config.Output == "table" {
		table := &output.Table{
			Headers: []string{"NAME", "TARGET", "UNIT", "PROGRESS", "START", "END"},
		}
		for _, g := range goals {
			table.AddRow(
				output.Sanitize(g.Name),
				fmt.Sprintf("%.1f", g.Target),
				output.Sanitize(g.Unit),
				fmt.Sprintf("%.1f", g.Progress),
				output.FormatDate(g.StartDate),
				output.FormatDate(g.EndDate),
			)
		}
		if err := table.Render(c.App.Writer); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "\nTotal: %d goals\n", len(goals))
		return nil
	}
	return env.Formatter().Format(c.App.Writer, goals)
}

func goalCreateAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()
	return runGoalCreate(c, env)
}

func runGoalCreate(c *cli.Context, env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	goal := domain.NewGoal{
		Name:        c.String("name"),
		Description: c.String("description"),
		Target:      c.String("target"),
		Unit:        c.String("unit"),
	}

	err := spin("creating goal", func() error {
		return env.Fitness.CreateGoal(ctx, goal)
	})
	if err != nil {
		return cli.Exit(domain.MessageOf(err), 1)
	}

	fmt.Fprintln(c.App.Writer, "Goal created.")
	return nil
}
