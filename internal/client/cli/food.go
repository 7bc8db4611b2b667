package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/models"
)

func (c *Cli) foodCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "food",
		Aliases: []string{"f"},
		Short:   "Food diary",
	}
	cmd.AddCommand(c.foodAddCommand(), c.foodListCommand(), c.foodRemoveCommand(), c.foodSummaryCommand())
	return cmd
}

func (c *Cli) foodAddCommand() *cobra.Command {
	var (
		entry models.FoodEntry
		meal  string
		at    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food diary entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			consumed, err := parseTime(at)
			if err != nil {
				return err
			}
			entry.ConsumedAt = consumed
			entry.MealType = models.MealType(meal)

			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			e, err := await(cmd.Context(), managers.Food.AddEntry(cmd.Context(), entry))
			if err != nil {
				return err
			}

			c.io.Printf("✓ Added %s (%.0f kcal), id %s\n", e.Payload.Name, e.Payload.Calories, e.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&entry.Name, "name", "", "Product or dish name")
	f.Float64Var(&entry.Calories, "calories", 0, "Calories, kcal")
	f.StringVar(&meal, "meal", string(models.MealSnack), "Meal: breakfast, lunch, dinner, snack")
	f.Float64Var(&entry.Macros.ProteinG, "protein", 0, "Protein, g")
	f.Float64Var(&entry.Macros.CarbsG, "carbs", 0, "Carbs, g")
	f.Float64Var(&entry.Macros.FatG, "fat", 0, "Fat, g")
	f.StringVar(&entry.Notes, "notes", "", "Notes")
	f.StringVar(&at, "at", "", "Time of the meal (default now)")
	return cmd
}

func (c *Cli) foodListCommand() *cobra.Command {
	var week bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's food entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			food := managers.Food

			period := aggregate.Today(food.Clock())
			if week {
				period = aggregate.ThisWeek(food.Clock())
			}
			items := aggregate.Filter(food.Snapshot(), func(e entity.Entity[models.FoodEntry]) bool {
				return period(e.Payload.ConsumedAt)
			})

			if len(items) == 0 {
				c.io.Println("No food entries found.")
				c.io.Println("Use 'fitsync food add' to add your first entry.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{
					e.ID.String() + marker(e),
					formatTime(e.Payload.ConsumedAt),
					string(e.Payload.MealType),
					e.Payload.Name,
					fmt.Sprintf("%.0f", e.Payload.Calories),
				})
			}
			return table(c.io, []string{"ID", "TIME", "MEAL", "NAME", "KCAL"}, rows)
		},
	}

	cmd.Flags().BoolVar(&week, "week", false, "Show the current week")
	return cmd
}

func (c *Cli) foodRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a food entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := await(cmd.Context(), managers.Food.DeleteEntry(cmd.Context(), entity.ParseID(args[0]))); err != nil {
				return err
			}

			c.io.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *Cli) foodSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show today's calories and macros",
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
			food := managers.Food

			macros := food.TodayMacros()
			c.io.Println("=== Today ===")
			c.io.Printf("Calories: %.0f / %.0f kcal (%s)\n", food.TodayCalories(), goals.Calories, percent(food.CalorieProgress(goals.Calories)))
			c.io.Printf("Protein: %.1f g, carbs: %.1f g, fat: %.1f g\n", macros.ProteinG, macros.CarbsG, macros.FatG)

			for _, g := range food.ByMeal() {
				kcal := aggregate.Sum(g.Items, func(f models.FoodEntry) float64 { return f.Calories })
				c.io.Printf("  %s: %d item(s), %.0f kcal\n", g.Key, len(g.Items), kcal)
			}
			return nil
		},
	}
}
