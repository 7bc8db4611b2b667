package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/models"
)

func (c *Cli) routeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "route",
		Aliases: []string{"r"},
		Short:   "Runs and walks",
	}
	cmd.AddCommand(c.routeAddCommand(), c.routeListCommand(), c.routeRemoveCommand())
	return cmd
}

func (c *Cli) routeAddCommand() *cobra.Command {
	var (
		r  models.Route
		at string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recorded, err := parseTime(at)
			if err != nil {
				return err
			}
			r.RecordedAt = recorded

			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			e, err := await(cmd.Context(), managers.Routes.RecordRoute(cmd.Context(), r))
			if err != nil {
				return err
			}

			c.io.Printf("✓ Recorded %s (%.2f km), id %s\n", e.Payload.Name, e.Payload.DistanceKm, e.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&r.Name, "name", "", "Route name")
	f.Float64Var(&r.DistanceKm, "km", 0, "Distance, km")
	f.IntVar(&r.DurationMinutes, "minutes", 0, "Duration, minutes")
	f.StringVar(&at, "at", "", "Time of the route (default now)")
	return cmd
}

func (c *Cli) routeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List routes of the current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			routes := managers.Routes

			week := aggregate.ThisWeek(routes.Clock())
			items := aggregate.Filter(routes.Snapshot(), func(e entity.Entity[models.Route]) bool {
				return week(e.Payload.RecordedAt)
			})

			if len(items) == 0 {
				c.io.Println("No routes this week.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{
					e.ID.String() + marker(e),
					formatTime(e.Payload.RecordedAt),
					e.Payload.Name,
					fmt.Sprintf("%.2f", e.Payload.DistanceKm),
					strconv.Itoa(e.Payload.DurationMinutes),
				})
			}
			if err := table(c.io, []string{"ID", "TIME", "NAME", "KM", "MIN"}, rows); err != nil {
				return err
			}

			c.io.Printf("Total: %.2f km, average pace %.2f min/km\n", routes.WeekDistanceKm(), routes.AveragePace())
			return nil
		},
	}
}

func (c *Cli) routeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a route",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			managers, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := await(cmd.Context(), managers.Routes.DeleteRoute(cmd.Context(), entity.ParseID(args[0]))); err != nil {
				return err
			}

			c.io.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	}
}
