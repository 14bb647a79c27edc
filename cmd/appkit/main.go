// Command appkit is a small CLI over the AppKit auth API: account sign-up,
// sign-in, profile inspection and password reset, with the session token
// persisted between invocations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	zlog "github.com/rs/zerolog/log"

	appkit "github.com/reown-com/appkit-go"
	"github.com/reown-com/appkit-go/schema"
)

type options struct {
	appkit.Options

	Email      string `long:"email" description:"account email"`
	Password   string `long:"password" description:"account password"`
	ResetToken string `long:"reset-token" description:"emailed password reset token"`

	Args struct {
		Command string `positional-arg-name:"command" description:"signup | signin | signout | whoami | reset-request | reset-confirm"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		zlog.Fatal().Err(err).Msg("appkit")
	}
}

func run(args []string) error {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, args); err != nil {
		return err
	}
	service, err := appkit.NewClient(&opts.Options)
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch opts.Args.Command {
	case "signup":
		user, err := service.SignUp(ctx, &schema.SignUpRequest{Email: opts.Email, Password: opts.Password})
		if err != nil {
			return err
		}
		return print(user)
	case "signin":
		user, err := service.SignIn(ctx, &schema.SignInRequest{Email: opts.Email, Password: opts.Password})
		if err != nil {
			return err
		}
		return print(user)
	case "signout":
		return service.SignOut(ctx)
	case "whoami":
		user, err := service.User(ctx)
		if err != nil {
			return err
		}
		return print(user)
	case "reset-request":
		return service.RequestPasswordReset(ctx, opts.Email)
	case "reset-confirm":
		return service.ResetPassword(ctx, opts.ResetToken, opts.Password)
	default:
		return fmt.Errorf("unknown command %q", opts.Args.Command)
	}
}

func print(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
