package account

import (
	"context"
	"io"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/auth"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/pkg/utils"
	"github.com/youta-t/flarc"
)

type Option = func(*config) *config

type config struct {
	prompt func(in io.Reader, out io.Writer) Prompt
}

func newConfig(options ...Option) *config {
	return utils.ApplyAll(&config{prompt: Terminal}, options...)
}

// WithPrompt replaces the way to ask values missing in flags. Default is Terminal.
func WithPrompt(prompt func(in io.Reader, out io.Writer) Prompt) Option {
	return func(c *config) *config {
		c.prompt = prompt
		return c
	}
}

type LoginFlags struct {
	Username string `flag:"username" alias:"u" metavar:"NAME" help:"username to sign in. prompted when omitted"`
	Password string `flag:"password" metavar:"PASSWORD" help:"password to sign in. prompted without echo when omitted"`
}

func NewLogin(options ...Option) (flarc.Command, error) {
	return flarc.NewCommand(
		"Sign in to the Student Management System.",
		LoginFlags{},
		flarc.Args{},
		common.NewSessionTask(LoginTask(options...)),
		flarc.WithDescription(`
Sign in with username and password, and save the tokens into the session file.

The session file is "~/.smsctl/sessions/<profile>" unless "--session" is given.
When signing in fails, the former session is kept.
`),
	)
}

func LoginTask(options ...Option) common.SessionTask[LoginFlags] {
	conf := newConfig(options...)
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		store session.Store,
		cl flarc.Commandline[LoginFlags],
		_ []any,
	) error {
		flags := cl.Flags()
		prompt := conf.prompt(cl.Stdin(), cl.Stderr())

		username, err := ask(prompt, flags.Username, "username", false)
		if err != nil {
			return err
		}
		password, err := ask(prompt, flags.Password, "password", true)
		if err != nil {
			return err
		}

		if _, err := auth.New(client, store).Login(ctx, username, password); err != nil {
			return err
		}
		logger.Printf("signed in as %s", username)
		return nil
	}
}
