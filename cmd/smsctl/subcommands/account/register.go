package account

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/auth"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/screen"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/youta-t/flarc"
)

type RegisterFlags struct {
	Username string `flag:"username" alias:"u" metavar:"NAME" help:"username of the new account. prompted when omitted"`
	Email    string `flag:"email" metavar:"EMAIL" help:"email of the new account. prompted when omitted"`
	FullName string `flag:"full-name" metavar:"NAME" help:"full name of the new account"`
}

func NewRegister(options ...Option) (flarc.Command, error) {
	return flarc.NewCommand(
		"Create a new account.",
		RegisterFlags{},
		flarc.Args{},
		common.NewSessionTask(RegisterTask(options...)),
		flarc.WithDescription(`
Create a new account. Password is prompted twice, without echo on terminals.

It does not sign in. Run "login" after that.
`),
	)
}

func RegisterTask(options ...Option) common.SessionTask[RegisterFlags] {
	conf := newConfig(options...)
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		store session.Store,
		cl flarc.Commandline[RegisterFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		prompt := conf.prompt(cl.Stdin(), cl.Stderr())

		reg := accounts.Registration{FullName: flags.FullName}
		var err error
		if reg.Username, err = ask(prompt, flags.Username, "username", false); err != nil {
			return err
		}
		if reg.Email, err = ask(prompt, flags.Email, "email", false); err != nil {
			return err
		}
		if reg.Password, err = ask(prompt, "", "password", true); err != nil {
			return err
		}
		if reg.PasswordConfirm, err = ask(prompt, "", "password (again)", true); err != nil {
			return err
		}

		form := screen.NewForm(
			auth.New(client, store).Register,
			"failed to register the user",
			"username", "email", "password", "password_confirm",
		)
		user, err := form.Submit(ctx, reg)
		if err != nil {
			return common.Submitted(err)
		}
		logger.Printf("user %s is registered", user.Username)
		return common.WriteJSON(cl.Stdout(), user)
	}
}
