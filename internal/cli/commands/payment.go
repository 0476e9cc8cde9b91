package commands

import (
	"context"
	"fmt"
	"time"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/cli/model"
	"PayTrack/internal/cli/model/view"
	"PayTrack/internal/config"
)

type paymentCmd struct{}

func (paymentCmd) Name() string        { return "payment" }
func (paymentCmd) Description() string { return "Show payment details" }
func (paymentCmd) Usage() string       { return "payment <id>" }

func (paymentCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		p, err := app.Payments.Get(ctx, args[0])
		if err != nil {
			return err
		}
		printPayment(p)
		return nil
	})
}

func printPayment(p *model.Payment) {
	fmt.Fprintf(Out, "ID:          %s\n", p.ID)
	fmt.Fprintf(Out, "Amount:      %s\n", view.Amount(p.Amount))
	fmt.Fprintf(Out, "Status:      %s\n", view.StatusLabel(p.Status))
	fmt.Fprintf(Out, "Receiver:    %s\n", p.Receiver)
	fmt.Fprintf(Out, "Method:      %s %s\n", view.MethodIcon(p.Method), p.Method)
	fmt.Fprintf(Out, "Date:        %s\n", view.Date(p.Date, time.Local))
	if p.Description != "" {
		fmt.Fprintf(Out, "Description: %s\n", p.Description)
	}
}

func init() { RegisterCmd(paymentCmd{}) }
