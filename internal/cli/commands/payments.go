package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/cli/model"
	"PayTrack/internal/cli/model/view"
	"PayTrack/internal/config"
)

type paymentsCmd struct{}

func (paymentsCmd) Name() string        { return "payments" }
func (paymentsCmd) Description() string { return "List payments with optional filters" }
func (paymentsCmd) Usage() string {
	return "payments [--status s] [--method m] [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--page n] [--limit n]"
}

func (paymentsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var f model.Filter
	fs := flag.NewFlagSet("payments", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.Status, "status", "", "pending|completed|failed")
	fs.StringVar(&f.Method, "method", "", "payment method")
	fs.StringVar(&f.DateFrom, "from", "", "start date, YYYY-MM-DD")
	fs.StringVar(&f.DateTo, "to", "", "end date, YYYY-MM-DD")
	fs.IntVar(&f.Page, "page", 0, "page number")
	fs.IntVar(&f.Limit, "limit", 0, "page size")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	return withApp(cfg, func(app *bootstrap.App) error {
		list, err := app.Payments.List(ctx, f)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "No payments found")
			return nil
		}
		for _, p := range list {
			fmt.Fprintln(Out, view.PaymentLine(p))
		}
		fmt.Fprintf(Out, "%d payment(s)\n", len(list))
		return nil
	})
}

func init() { RegisterCmd(paymentsCmd{}) }
