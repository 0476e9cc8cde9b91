package commands

import (
	"context"
	"fmt"
	"strings"

	"PayTrack/internal/cli/bootstrap"
	"PayTrack/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account (logs in if the server returns a token)" }
func (registerCmd) Usage() string       { return "register <email> <password> <name>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	// имя может состоять из нескольких слов
	name := strings.Join(args[2:], " ")
	return withApp(cfg, func(app *bootstrap.App) error {
		resp, err := app.Auth.Register(ctx, args[0], args[1], name)
		if err != nil {
			return err
		}
		if resp.AccessToken == "" {
			fmt.Fprintln(Out, "Registered successfully. Run `ptcli login` to sign in")
			return nil
		}
		fmt.Fprintln(Out, "Registered and logged in")
		return nil
	})
}

func init() { RegisterCmd(registerCmd{}) }
