package account_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/env"
	smserr "github.com/opst/smsctl/cmd/smsctl/errors"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/account"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/commandline"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/internal/testenv"
	"github.com/opst/smsctl/cmd/smsctl/subcommands/logger"
	"github.com/opst/smsctl/pkg/utils/try"
)

// answers returns Prompt which answers values in order, and records asked labels.
func answers(asked *[]string, values ...string) func(io.Reader, io.Writer) account.Prompt {
	return func(io.Reader, io.Writer) account.Prompt {
		return func(label string, secret bool) (string, error) {
			*asked = append(*asked, label)
			if len(values) == 0 {
				return "", account.ErrEmptyInput
			}
			v := values[0]
			values = values[1:]
			return v, nil
		}
	}
}

func TestLoginTask(t *testing.T) {
	ctx := context.Background()

	type when struct {
		flags   account.LoginFlags
		answers []string
	}
	type then struct {
		asked    []string
		loggedIn bool
		err      error
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			client, store, _ := testenv.WithSession(t)
			asked := []string{}
			cl, _, _ := commandline.New("smsctl login", when.flags, nil)

			task := account.LoginTask(account.WithPrompt(answers(&asked, when.answers...)))
			err := task(ctx, logger.Null(), *env.New(), client, store, cl, nil)
			if then.err == nil {
				if err != nil {
					t.Fatal(err)
				}
			} else if !errors.Is(err, then.err) {
				t.Fatalf("unexpected error: %v (expected: %v)", err, then.err)
			}

			if strings.Join(asked, ",") != strings.Join(then.asked, ",") {
				t.Errorf("asked: actual = %v, expected = %v", asked, then.asked)
			}
			tokens := try.To(store.Get()).OrFatal(t)
			if tokens.HasAccess() != then.loggedIn {
				t.Errorf("logged in: actual = %v, expected = %v", tokens.HasAccess(), then.loggedIn)
			}
			if then.loggedIn && tokens.Refresh == "" {
				t.Errorf("refresh token is not stored")
			}
		}
	}

	t.Run("with flags, nothing is asked", theory(
		when{flags: account.LoginFlags{Username: testenv.Username, Password: testenv.Password}},
		then{asked: []string{}, loggedIn: true},
	))

	t.Run("missing password is asked", theory(
		when{flags: account.LoginFlags{Username: testenv.Username}, answers: []string{testenv.Password}},
		then{asked: []string{"password"}, loggedIn: true},
	))

	t.Run("both are asked when nothing given", theory(
		when{answers: []string{testenv.Username, testenv.Password}},
		then{asked: []string{"username", "password"}, loggedIn: true},
	))

	t.Run("wrong password is unauthorized, and not logged in", theory(
		when{flags: account.LoginFlags{Username: testenv.Username, Password: "wrong"}},
		then{asked: []string{}, err: rest.ErrUnauthorized},
	))

	t.Run("unanswered prompt is an error", theory(
		when{flags: account.LoginFlags{Username: testenv.Username}},
		then{asked: []string{"password"}, err: account.ErrEmptyInput},
	))

	t.Run("failed login keeps the former session", func(t *testing.T) {
		client, store, _ := testenv.WithSession(t)
		former := session.Tokens{Access: "former-access", Refresh: "former-refresh"}
		if err := store.Set(former); err != nil {
			t.Fatal(err)
		}

		cl, _, _ := commandline.New("smsctl login", account.LoginFlags{Username: testenv.Username, Password: "wrong"}, nil)
		if err := account.LoginTask()(ctx, logger.Null(), *env.New(), client, store, cl, nil); err == nil {
			t.Fatal("login should fail")
		}
		if got := try.To(store.Get()).OrFatal(t); got != former {
			t.Errorf("session: actual = %+v, expected = %+v", got, former)
		}
	})
}

func login(t *testing.T, client rest.SmsClient, store session.Store) {
	t.Helper()
	cl, _, _ := commandline.New("smsctl login", account.LoginFlags{Username: testenv.Username, Password: testenv.Password}, nil)
	if err := account.LoginTask()(context.Background(), logger.Null(), *env.New(), client, store, cl, nil); err != nil {
		t.Fatal(err)
	}
}

func TestStatusAndLogout(t *testing.T) {
	ctx := context.Background()
	client, store, _ := testenv.WithSession(t)

	status := func() string {
		cl, stdout, _ := commandline.New("smsctl status", struct{}{}, nil)
		if err := account.StatusTask()(ctx, logger.Null(), *env.New(), client, store, cl, nil); err != nil {
			t.Fatal(err)
		}
		return stdout.String()
	}

	if got := status(); got != "not signed in\n" {
		t.Errorf("before login: %q", got)
	}

	login(t, client, store)
	if got := status(); got != "signed in\n" {
		t.Errorf("after login: %q", got)
	}

	cl, _, _ := commandline.New("smsctl logout", struct{}{}, nil)
	if err := account.LogoutTask()(ctx, logger.Null(), *env.New(), client, store, cl, nil); err != nil {
		t.Fatal(err)
	}
	if got := status(); got != "not signed in\n" {
		t.Errorf("after logout: %q", got)
	}
	if tokens := try.To(store.Get()).OrFatal(t); tokens != (session.Tokens{}) {
		t.Errorf("tokens are left: %+v", tokens)
	}
}

func TestWhoamiTask(t *testing.T) {
	ctx := context.Background()

	t.Run("before login, it advices to log in", func(t *testing.T) {
		client, store, _ := testenv.WithSession(t)
		for _, claims := range []bool{false, true} {
			cl, _, _ := commandline.New("smsctl whoami", account.WhoamiFlags{Claims: claims}, nil)
			err := account.WhoamiTask()(ctx, logger.Null(), *env.New(), client, store, cl, nil)
			var cuierr smserr.CUIError
			if !errors.As(err, &cuierr) {
				t.Fatalf("claims = %v: unexpected error: %v", claims, err)
			}
			if !strings.Contains(cuierr.Advice(), "smsctl login") {
				t.Errorf("claims = %v: advice = %q", claims, cuierr.Advice())
			}
		}
	})

	t.Run("the server tells the current user", func(t *testing.T) {
		client, store, _ := testenv.WithSession(t)
		login(t, client, store)

		cl, stdout, _ := commandline.New("smsctl whoami", account.WhoamiFlags{}, nil)
		if err := account.WhoamiTask()(ctx, logger.Null(), *env.New(), client, store, cl, nil); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{`"username": "prof1"`, `"is_instructor": true`} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("%s is not in:\n%s", want, stdout.String())
			}
		}
	})

	t.Run("claims are decoded from the stored access token", func(t *testing.T) {
		client, store, _ := testenv.WithSession(t)
		login(t, client, store)

		cl, stdout, _ := commandline.New("smsctl whoami", account.WhoamiFlags{Claims: true}, nil)
		if err := account.WhoamiTask()(ctx, logger.Null(), *env.New(), client, store, cl, nil); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{`"token_type": "access"`, `"jti": `} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("%s is not in:\n%s", want, stdout.String())
			}
		}
	})
}

func TestRegisterTask(t *testing.T) {
	ctx := context.Background()

	t.Run("registered user can log in", func(t *testing.T) {
		client, store, _ := testenv.WithSession(t)
		asked := []string{}
		cl, stdout, _ := commandline.New("smsctl register", account.RegisterFlags{
			Username: "ta1", FullName: "Teaching Assistant",
		}, nil)

		task := account.RegisterTask(account.WithPrompt(answers(&asked, "ta1@example.com", "pw1", "pw1")))
		if err := task(ctx, logger.Null(), *env.New(), client, store, cl, nil); err != nil {
			t.Fatal(err)
		}
		if want := "email,password,password (again)"; strings.Join(asked, ",") != want {
			t.Errorf("asked = %v", asked)
		}
		if !strings.Contains(stdout.String(), `"username": "ta1"`) {
			t.Errorf("output:\n%s", stdout.String())
		}
		if tokens := try.To(store.Get()).OrFatal(t); tokens.HasAccess() {
			t.Errorf("registration should not sign in")
		}

		lcl, _, _ := commandline.New("smsctl login", account.LoginFlags{Username: "ta1", Password: "pw1"}, nil)
		if err := account.LoginTask()(ctx, logger.Null(), *env.New(), client, store, lcl, nil); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("mismatched confirmation is told without sending", func(t *testing.T) {
		client, store, st := testenv.WithSession(t)
		asked := []string{}
		cl, _, _ := commandline.New("smsctl register", account.RegisterFlags{
			Username: "ta1", Email: "ta1@example.com",
		}, nil)

		task := account.RegisterTask(account.WithPrompt(answers(&asked, "pw1", "pw2")))
		err := task(ctx, logger.Null(), *env.New(), client, store, cl, nil)
		if err == nil {
			t.Fatal("registration should fail")
		}
		if err.Error() != "password_confirm: passwords do not match" {
			t.Errorf("message = %q", err.Error())
		}
		if _, ok := st.Authenticate("ta1", "pw1"); ok {
			t.Errorf("user is registered")
		}
	})

	t.Run("taken username is told by the server", func(t *testing.T) {
		client, store, _ := testenv.WithSession(t)
		asked := []string{}
		cl, _, _ := commandline.New("smsctl register", account.RegisterFlags{
			Username: testenv.Username, Email: "another@example.com",
		}, nil)

		task := account.RegisterTask(account.WithPrompt(answers(&asked, "pw1", "pw1")))
		err := task(ctx, logger.Null(), *env.New(), client, store, cl, nil)
		if err == nil || err.Error() != "username: A user with that username already exists." {
			t.Errorf("unexpected error: %v", err)
		}
		var apierr *rest.ApiError
		if !errors.As(err, &apierr) || apierr.Status != 400 {
			t.Errorf("error should be a response of 400: %v", err)
		}
	})
}

func TestTerminal(t *testing.T) {
	in := strings.NewReader("prof1\r\npw\n")
	out := new(strings.Builder)
	prompt := account.Terminal(in, out)

	if v := try.To(prompt("username", false)).OrFatal(t); v != "prof1" {
		t.Errorf("first line = %q", v)
	}
	if v := try.To(prompt("password", true)).OrFatal(t); v != "pw" {
		t.Errorf("second line = %q", v)
	}
	if _, err := prompt("more", false); !errors.Is(err, account.ErrEmptyInput) {
		t.Errorf("after all lines: %v", err)
	}
	if got := out.String(); got != "username: password: more: " {
		t.Errorf("labels = %q", got)
	}

}
