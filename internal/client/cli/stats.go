package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/models"
)

var errInvalidGoal = errors.New("goals must not be negative")

// goals возвращает сохраненные дневные цели
func (c *Cli) goals(cmd *cobra.Command) (models.Goals, error) {
	deps, err := c.dependencies()
	if err != nil {
		return models.Goals{}, err
	}

	goals, err := deps.Goals.GetGoals(cmd.Context())
	if err != nil {
		return models.Goals{}, fmt.Errorf("failed to get goals: %w", err)
	}
	return goals, nil
}

func (c *Cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's progress and weekly totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			goals, err := c.goals(cmd)
			if err != nil {
				return err
			}

			food, body := managers.Food, managers.Body
			c.io.Println("=== Today ===")
			c.io.Printf("Calories: %.0f / %.0f kcal (%s)\n", food.TodayCalories(), goals.Calories, percent(food.CalorieProgress(goals.Calories)))
			c.io.Printf("Water: %.0f / %.0f ml (%s)\n", body.TodayWater(), goals.WaterMl, percent(body.WaterProgress(goals.WaterMl)))
			c.io.Printf("Steps: %d / %d (%s)\n", body.TodaySteps(), goals.Steps, percent(body.StepProgress(goals.Steps)))

			c.io.Println("=== This week ===")
			c.io.Printf("Workouts: %d, %d min, %.0f kcal burned\n",
				len(managers.Workouts.WeekWorkouts()), managers.Workouts.WeekMinutes(), managers.Workouts.WeekCaloriesBurned())
			c.io.Printf("Routes: %d, %.2f km\n", len(managers.Routes.WeekRoutes()), managers.Routes.WeekDistanceKm())

			if latest, ok := body.Latest(); ok && latest.WeightKg > 0 {
				c.io.Printf("Latest weight: %.1f kg (%s)\n", latest.WeightKg, formatTime(latest.MeasuredAt))
			}
			return nil
		},
	}
}

func (c *Cli) goalsCommand() *cobra.Command {
	var goals models.Goals

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show or change daily goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := c.goals(cmd)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if !f.Changed("calories") && !f.Changed("water") && !f.Changed("steps") {
				c.io.Printf("Calories: %.0f kcal\n", current.Calories)
				c.io.Printf("Water: %.0f ml\n", current.WaterMl)
				c.io.Printf("Steps: %d\n", current.Steps)
				return nil
			}

			if f.Changed("calories") {
				current.Calories = goals.Calories
			}
			if f.Changed("water") {
				current.WaterMl = goals.WaterMl
			}
			if f.Changed("steps") {
				current.Steps = goals.Steps
			}
			if current.Calories < 0 || current.WaterMl < 0 || current.Steps < 0 {
				return errInvalidGoal
			}

			if err := c.deps.Goals.SaveGoals(cmd.Context(), current); err != nil {
				return fmt.Errorf("failed to save goals: %w", err)
			}
			c.io.Println("✓ Goals updated")
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&goals.Calories, "calories", 0, "Daily calories goal, kcal")
	f.Float64Var(&goals.WaterMl, "water", 0, "Daily water goal, ml")
	f.IntVar(&goals.Steps, "steps", 0, "Daily steps goal")
	return cmd
}

func (c *Cli) bodyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "body",
		Short: "Body measurements and activity",
	}
	cmd.AddCommand(c.bodyLogCommand())
	return cmd
}

func (c *Cli) bodyLogCommand() *cobra.Command {
	var (
		stat models.BodyStat
		fat  float64
		at   string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log weight, water or steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			measured, err := parseTime(at)
			if err != nil {
				return err
			}
			stat.MeasuredAt = measured
			if cmd.Flags().Changed("fat") {
				stat.BodyFatPct = &fat
			}

			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			e, err := await(cmd.Context(), managers.Body.LogStat(cmd.Context(), stat))
			if err != nil {
				return err
			}

			c.io.Printf("✓ Logged measurement, id %s\n", e.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&stat.WeightKg, "weight", 0, "Weight, kg")
	f.Float64Var(&stat.WaterMl, "water", 0, "Water, ml")
	f.IntVar(&stat.Steps, "steps", 0, "Steps")
	f.Float64Var(&fat, "fat", 0, "Body fat, %")
	f.StringVar(&at, "at", "", "Time of the measurement (default now)")
	return cmd
}
