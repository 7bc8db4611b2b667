package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/models"
)

func (c *Cli) planCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plan",
		Aliases: []string{"p"},
		Short:   "Training plans",
	}
	cmd.AddCommand(c.planAddCommand(), c.planRenameCommand(), c.planRemoveCommand(), c.planListCommand())
	return cmd
}

func (c *Cli) planAddCommand() *cobra.Command {
	var (
		p     models.TrainingPlan
		start string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a training plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			starts, err := parseTime(start)
			if err != nil {
				return err
			}
			p.StartsAt = starts

			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			deps, err := c.dependencies()
			if err != nil {
				return err
			}
			p.TrainerID = deps.Session.User().UserID

			e, err := await(cmd.Context(), managers.Plans.CreatePlan(cmd.Context(), p))
			if err != nil {
				return err
			}

			c.io.Printf("✓ Created plan %s (%d weeks), id %s\n", e.Payload.Title, e.Payload.Weeks, e.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Title, "title", "", "Plan title")
	f.IntVar(&p.Weeks, "weeks", 4, "Plan length, weeks")
	f.StringVar(&p.StudentID, "student", "", "Assign the plan to a student")
	f.StringVar(&start, "start", "", "Start date (default today)")
	return cmd
}

func (c *Cli) planRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a training plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			e, err := await(cmd.Context(), managers.Plans.RenamePlan(cmd.Context(), entity.ParseID(args[0]), args[1]))
			if err != nil {
				return err
			}

			c.io.Printf("✓ Plan renamed to %s\n", e.Payload.Title)
			return nil
		},
	}
}

func (c *Cli) planRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a training plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := await(cmd.Context(), managers.Plans.DeletePlan(cmd.Context(), entity.ParseID(args[0]))); err != nil {
				return err
			}

			c.io.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *Cli) planListCommand() *cobra.Command {
	var student string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List training plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			items := managers.Plans.Snapshot()
			if cmd.Flags().Changed("student") {
				items = aggregate.Filter(items, func(e entity.Entity[models.TrainingPlan]) bool {
					return e.Payload.StudentID == student
				})
			}

			if len(items) == 0 {
				c.io.Println("No training plans found.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{
					e.ID.String() + marker(e),
					e.Payload.StartsAt.Format("2006-01-02"),
					e.Payload.Title,
					strconv.Itoa(e.Payload.Weeks),
					orDash(e.Payload.StudentID),
				})
			}
			return table(c.io, []string{"ID", "START", "TITLE", "WEEKS", "STUDENT"}, rows)
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Show plans of one student")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
