package account

import (
	"context"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/auth"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/youta-t/flarc"
)

func NewLogout() (flarc.Command, error) {
	return flarc.NewCommand(
		"Sign out. Tokens in the session file are removed.",
		struct{}{},
		flarc.Args{},
		common.NewSessionTask(LogoutTask()),
	)
}

func LogoutTask() common.SessionTask[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		store session.Store,
		cl flarc.Commandline[struct{}],
		_ []any,
	) error {
		if err := auth.New(client, store).Logout(); err != nil {
			return err
		}
		logger.Println("signed out")
		return nil
	}
}
