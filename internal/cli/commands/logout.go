package commands

import (
	"context"
	"errors"
	"fmt"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/cli/service"
	"PayTrack/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Logout and remove the stored access token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		err := app.Auth.Logout(ctx)
		var sle *service.ServerLogoutError
		switch {
		case err == nil:
			fmt.Fprintln(Out, "Logged out")
		case errors.As(err, &sle):
			// локально сессия уже завершена
			fmt.Fprintf(Out, "Logged out locally. Warning: %v\n", sle.Err)
		default:
			return err
		}
		return nil
	})
}

func init() { RegisterCmd(logoutCmd{}) }
