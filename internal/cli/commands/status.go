package commands

import (
	"context"
	"fmt"
	"time"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the local session state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		st, err := app.Auth.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "API: %s\n", app.Client.BaseURL())
		if !st.Authenticated {
			fmt.Fprintln(Out, "Status: not logged in")
			return nil
		}
		who := st.Email
		if who == "" {
			who = st.Subject
		}
		if who != "" {
			fmt.Fprintf(Out, "User: %s\n", who)
		}
		switch {
		case st.ExpiresAt.IsZero():
			fmt.Fprintln(Out, "Status: logged in (token expiry unknown)")
		case st.Valid:
			fmt.Fprintf(Out, "Status: logged in, token expires %s\n", st.ExpiresAt.Local().Format(time.DateTime))
		default:
			fmt.Fprintf(Out, "Status: token expired %s, run login again\n", st.ExpiresAt.Local().Format(time.DateTime))
		}
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
