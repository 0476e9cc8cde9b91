package commands

import (
	"context"
	"fmt"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the access token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withApp(cfg, func(app *bootstrap.App) error {
		resp, err := app.Auth.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if resp.AccessToken == "" {
			fmt.Fprintln(Out, "Login accepted, but the server returned no access token")
			return nil
		}
		fmt.Fprintln(Out, "Logged in successfully")
		return nil
	})
}

func init() { RegisterCmd(loginCmd{}) }
