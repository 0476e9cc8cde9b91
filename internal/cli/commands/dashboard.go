package commands

import (
	"context"
	"fmt"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/cli/model/view"
	"PayTrack/internal/config"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Show payment statistics and recent payments" }
func (dashboardCmd) Usage() string       { return "dashboard" }

func (dashboardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		d, err := app.Payments.Dashboard(ctx)
		if err != nil {
			return err
		}
		if d.StatsErr != nil {
			fmt.Fprintf(Out, "Stats unavailable: %v\n", d.StatsErr)
		}
		fmt.Fprintf(Out, "Total payments: %d\n", d.Stats.Total)
		fmt.Fprintf(Out, "Total amount:   %s\n", view.Amount(d.Stats.TotalAmount))
		fmt.Fprintf(Out, "Pending: %d  Completed: %d  Failed: %d\n", d.Stats.Pending, d.Stats.Completed, d.Stats.Failed)
		fmt.Fprintln(Out)

		fmt.Fprintln(Out, "Recent payments:")
		if d.RecentErr != nil {
			fmt.Fprintf(Out, "  unavailable: %v\n", d.RecentErr)
			return nil
		}
		if len(d.Recent) == 0 {
			fmt.Fprintln(Out, "  no payments yet")
			return nil
		}
		for _, p := range d.Recent {
			fmt.Fprintln(Out, "  "+view.PaymentLine(p))
		}
		return nil
	})
}

func init() { RegisterCmd(dashboardCmd{}) }
