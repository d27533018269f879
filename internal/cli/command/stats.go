package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/cli/output"
	"github.com/fittrackhq/fittrack-go/internal/domain"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Show workout statistics",
		Action: statsAction,
	}
}

func statsAction(c *cli.Context) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.Close()
	return runStats(c, env)
}

func runStats(c *cli.Context, env *Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var stats *domain.Stats
	err := spin("fetching stats", func() error {
		var err error
		stats, err = env.Fitness.GetStats(ctx)
		return err
	})
	if err != nil {
		return cli.Exit(domain.MessageOf(err), 1)
	}

	if env.Config.Output == "table" {
		table := &output.Table{Headers: []string{"METRIC", "VALUE"}}
		table.AddRow("Total workouts", fmt.Sprintf("%d", stats.TotalWorkouts))
		table.AddRow("Calories burned", fmt.Sprintf("%.0f", stats.TotalCaloriesBurned))
		table.AddRow("Avg workout duration", fmt.Sprintf("%.1f min", stats.AverageWorkoutDuration))
		table.AddRow("Distance covered", fmt.Sprintf("%.1f km", stats.TotalDistanceCovered))
		table.AddRow("Last workout", output.FormatTime(stats.LastWorkout))
		return table.Render(c.App.Writer)
	}
	return env.Formatter().Format(c.App.Writer, stats)
}
