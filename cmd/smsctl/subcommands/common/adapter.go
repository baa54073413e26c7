package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/opst/smsctl/cmd/smsctl/config/profiles"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/logger"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := logger.For(cl.Stderr(), cl.Fullname())

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

// SessionTask is a task which handles the session of the user by itself.
type SessionTask[T any] func(
	ctx context.Context,
	logger *log.Logger,
	smsEnv env.SmsEnv,
	client rest.SmsClient,
	store session.Store,
	cl flarc.Commandline[T],
	params []any,
) error

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	smsEnv env.SmsEnv,
	client rest.SmsClient,
	cl flarc.Commandline[T],
	params []any,
) error

// NewSessionTask loads the profile, the session file and smsenv pointed by common flags,
// and passes them to task.
//
// The client sends the access token read from the session file on each request.
func NewSessionTask[T any](task SessionTask[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		profile, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, profiles.ErrProfileStoreNotFound) {
				return fmt.Errorf(
					"%w: profile store (%s) is not found. Please try `smsctl init` first",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load profile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := profile[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s). Please try `smsctl init` first",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		e, err := env.LoadSmsEnv(commonFlag.Env)
		if err != nil {
			return fmt.Errorf("%w: failed to load smsenv (%s)", err, commonFlag.Env)
		}

		home, err := os.UserHomeDir()
		if err != nil && commonFlag.Session == "" {
			return fmt.Errorf("%w: cannot find the place of session file. Use --session", err)
		}
		store := session.NewFileStore(commonFlag.SessionPath(home))

		client, err := rest.NewClient(prof, rest.TokenSourceFunc(session.AccessToken(store)))
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create client. Your profile (%s in %s) can be broken.\n\nRemove it and try `smsctl init` again",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}
		return task(ctx, logger, *e, client, store, cl, params)
	})
}

func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewSessionTask(func(
		ctx context.Context,
		logger *log.Logger,
		smsEnv env.SmsEnv,
		client rest.SmsClient,
		_ session.Store,
		cl flarc.Commandline[T],
		params []any,
	) error {
		return task(ctx, logger, smsEnv, client, cl, params)
	})
}
