package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/models"
)

func (c *Cli) workoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workout",
		Aliases: []string{"w"},
		Short:   "Workout journal",
	}
	cmd.AddCommand(c.workoutLogCommand(), c.workoutListCommand(), c.workoutDurationCommand(), c.workoutRemoveCommand())
	return cmd
}

func (c *Cli) workoutLogCommand() *cobra.Command {
	var (
		w  models.Workout
		at string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			performed, err := parseTime(at)
			if err != nil {
				return err
			}
			w.PerformedAt = performed

			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			e, err := await(cmd.Context(), managers.Workouts.LogWorkout(cmd.Context(), w))
			if err != nil {
				return err
			}

			c.io.Printf("✓ Logged %s (%d min), id %s\n", e.Payload.Title, e.Payload.DurationMinutes, e.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&w.Title, "title", "", "Workout title")
	f.StringVar(&w.Kind, "kind", "strength", "Workout kind: strength, cardio, mobility")
	f.IntVar(&w.DurationMinutes, "minutes", 0, "Duration, minutes")
	f.Float64Var(&w.CaloriesBurned, "calories", 0, "Calories burned, kcal")
	f.StringVar(&at, "at", "", "Time of the workout (default now)")
	return cmd
}

func (c *Cli) workoutListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workouts of the current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			workouts := managers.Workouts

			week := aggregate.ThisWeek(workouts.Clock())
			items := aggregate.Filter(workouts.Snapshot(), func(e entity.Entity[models.Workout]) bool {
				return week(e.Payload.PerformedAt)
			})

			if len(items) == 0 {
				c.io.Println("No workouts this week.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{
					e.ID.String() + marker(e),
					formatTime(e.Payload.PerformedAt),
					e.Payload.Kind,
					e.Payload.Title,
					strconv.Itoa(e.Payload.DurationMinutes),
				})
			}
			if err := table(c.io, []string{"ID", "TIME", "KIND", "TITLE", "MIN"}, rows); err != nil {
				return err
			}

			c.io.Printf("Total: %d min, %.0f kcal\n", workouts.WeekMinutes(), workouts.WeekCaloriesBurned())
			return nil
		},
	}
}

func (c *Cli) workoutDurationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <id> <minutes>",
		Short: "Change workout duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[1], err)
			}

			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			e, err := await(cmd.Context(), managers.Workouts.SetDuration(cmd.Context(), entity.ParseID(args[0]), minutes))
			if err != nil {
				return err
			}

			c.io.Printf("✓ %s now lasts %d min\n", e.Payload.Title, e.Payload.DurationMinutes)
			return nil
		},
	}
}

func (c *Cli) workoutRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a workout",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := await(cmd.Context(), managers.Workouts.DeleteWorkout(cmd.Context(), entity.ParseID(args[0]))); err != nil {
				return err
			}

			c.io.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	}
}
