package common_test

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	prof "github.com/opst/smsctl/cmd/smsctl/config/profiles"
	"github.com/opst/smsctl/cmd/smsctl/config/profiles/testutils"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/common"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/commandline"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/testenv"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/opst/smsctl/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func TestNewSessionTask(t *testing.T) {
	ctx := context.Background()

	t.Run("profile, smsenv and session file of common flags are passed", func(t *testing.T) {
		profile, _ := testenv.Server(t)
		storePath := try.To(testutils.TempProfile(t, "test", profile)).OrFatal(t)
		dir := t.TempDir()
		envPath := filepath.Join(dir, "smsenv")
		if err := os.WriteFile(envPath, []byte("semester: 2024-1\n"), 0600); err != nil {
			t.Fatal(err)
		}
		cf := common.CommonFlags{
			Profile:      "test",
			ProfileStore: storePath,
			Session:      filepath.Join(dir, "session"),
			Env:          envPath,
		}

		called := false
		task := common.NewSessionTask(func(
			ctx context.Context,
			logger *log.Logger,
			smsEnv env.SmsEnv,
			client rest.SmsClient,
			store session.Store,
			cl flarc.Commandline[struct{}],
			params []any,
		) error {
			called = true
			if smsEnv.Semester != "2024-1" {
				t.Errorf("smsenv = %+v", smsEnv)
			}
			if fs, ok := store.(*session.FileStore); !ok || fs.Path() != cf.Session {
				t.Errorf("session store = %#v", store)
			}
			if len(params) != 1 || params[0] != "rest" {
				t.Errorf("params = %v", params)
			}

			pair := try.To(client.ObtainToken(ctx, accounts.Credentials{
				Username: testenv.Username, Password: testenv.Password,
			})).OrFatal(t)
			if err := store.Set(session.Tokens{Access: pair.Access, Refresh: pair.Refresh}); err != nil {
				t.Fatal(err)
			}

			// the client reads the token from the session on each request.
			me := try.To(client.GetCurrentUser(ctx)).OrFatal(t)
			if me.Username != testenv.Username {
				t.Errorf("me = %+v", me)
			}
			return nil
		})

		cl, _, _ := commandline.New("smsctl test", struct{}{}, nil)
		if err := task(ctx, cl, []any{cf, "rest"}); err != nil {
			t.Fatal(err)
		}
		if !called {
			t.Fatal("task is not called")
		}
		if _, err := os.Stat(cf.Session); err != nil {
			t.Errorf("session file is not written: %v", err)
		}
	})

	never := func(t *testing.T) common.SessionTask[struct{}] {
		return func(context.Context, *log.Logger, env.SmsEnv, rest.SmsClient, session.Store, flarc.Commandline[struct{}], []any) error {
			t.Error("task should not be called")
			return nil
		}
	}

	t.Run("missing profile store advises to init", func(t *testing.T) {
		cf := common.CommonFlags{Profile: "test", ProfileStore: filepath.Join(t.TempDir(), "profile")}
		cl, _, _ := commandline.New("smsctl test", struct{}{}, nil)

		err := common.NewSessionTask(never(t))(ctx, cl, []any{cf})
		if !errors.Is(err, prof.ErrProfileStoreNotFound) || !strings.Contains(err.Error(), "smsctl init") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown profile advises to init", func(t *testing.T) {
		profile, _ := testenv.Server(t)
		storePath := try.To(testutils.TempProfile(t, "test", profile)).OrFatal(t)
		cf := common.CommonFlags{Profile: "another", ProfileStore: storePath}
		cl, _, _ := commandline.New("smsctl test", struct{}{}, nil)

		err := common.NewSessionTask(never(t))(ctx, cl, []any{cf})
		if err == nil || !strings.Contains(err.Error(), "'another'") || !strings.Contains(err.Error(), "smsctl init") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("without common flags, it is a programming error", func(t *testing.T) {
		cl, _, _ := commandline.New("smsctl test", struct{}{}, nil)
		if err := common.NewSessionTask(never(t))(ctx, cl, []any{}); err == nil {
			t.Error("error is expected")
		}
	})
}
