package account

import (
	"context"
	"errors"
	"log"

	"github.com/opst/smsctl/cmd/smsctl/auth"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	smserr "github.com/opst/smsctl/cmd/smsctl/errors"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/youta-t/flarc"
)

type WhoamiFlags struct {
	Claims bool `flag:"claims" help:"show claims in the access token instead of asking the server. They are not verified"`
}

func NewWhoami() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the signed-in user.",
		WhoamiFlags{},
		flarc.Args{},
		common.NewSessionTask(WhoamiTask()),
	)
}

func notLoggedIn(err error) error {
	return smserr.NewCuiError(
		"you are not signed in",
		smserr.WithAdvice("Run `smsctl login` first."),
		smserr.WithCause(err),
	)
}

func WhoamiTask() common.SessionTask[WhoamiFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		_ env.SmsEnv,
		client rest.SmsClient,
		store session.Store,
		cl flarc.Commandline[WhoamiFlags],
		_ []any,
	) error {
		s := auth.New(client, store)

		if cl.Flags().Claims {
			claims, err := s.Claims()
			if errors.Is(err, auth.ErrNotLoggedIn) {
				return notLoggedIn(err)
			} else if err != nil {
				return err
			}
			return common.WriteJSON(cl.Stdout(), claims)
		}

		me, err := s.CurrentUser(ctx)
		if errors.Is(err, auth.ErrNotLoggedIn) {
			return notLoggedIn(err)
		} else if err != nil {
			return err
		}
		return common.WriteJSON(cl.Stdout(), me)
	}
}
