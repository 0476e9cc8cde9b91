package commands

import (
	"context"
	"fmt"
	"strings"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/cli/model"
	"PayTrack/internal/config"
)

type paymentAddCmd struct{}

func (paymentAddCmd) Name() string        { return "payment-add" }
func (paymentAddCmd) Description() string { return "Create a payment (status defaults to pending)" }
func (paymentAddCmd) Usage() string {
	return "payment-add <amount> <receiver> <method> [<status>] [<description>]"
}

func (paymentAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[0], err)
	}
	in := model.CreatePayment{
		Amount:   amount,
		Receiver: args[1],
		Method:   args[2],
		Status:   model.StatusPending,
	}
	if len(args) > 3 {
		in.Status = args[3]
	}
	if len(args) > 4 {
		in.Description = strings.Join(args[4:], " ")
	}

	return withApp(cfg, func(app *bootstrap.App) error {
		p, err := app.Payments.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Payment created")
		printPayment(p)
		return nil
	})
}

func init() { RegisterCmd(paymentAddCmd{}) }
