package account

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/auth"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/youta-t/flarc"
)

func NewStatus() (flarc.Command, error) {
	return flarc.NewCommand(
		"Tell whether you are signed in.",
		struct{}{},
		flarc.Args{},
		common.NewSessionTask(StatusTask()),
		flarc.WithDescription(`
Tell whether the session file has an access token.

The token is not sent to the server, so an expired token is still reported as signed in.
Use "whoami" to ask the server.
`),
	)
}

func StatusTask() common.SessionTask[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		store session.Store,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		state := "not signed in"
		if auth.New(client, store).IsAuthenticated() {
			state = "signed in"
		}
		_, err := fmt.Fprintln(cl.Stdout(), state)
		return err
	}
}
