package auth_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opst/smsctl/cmd/smsctl/auth"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/cmd/smsctl/rest/mock"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/opst/smsctl/pkg/utils/try"
)

func TestLoginAndLogout(t *testing.T) {
	for name, store := range map[string]func(t *testing.T) session.Store{
		"memory": func(*testing.T) session.Store { return session.NewMemoryStore() },
		"file": func(t *testing.T) session.Store {
			return session.NewFileStore(filepath.Join(t.TempDir(), "sessions", "default"))
		},
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client := mock.New(t)
			client.Impl.ObtainToken = func(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error) {
				return accounts.TokenPair{Access: "A", Refresh: "R"}, nil
			}
			st := store(t)
			testee := auth.New(client, st)

			if testee.IsAuthenticated() {
				t.Fatal("authenticated before login")
			}

			tokens := try.To(testee.Login(ctx, "prof1", "pw")).OrFatal(t)
			if tokens != (session.Tokens{Access: "A", Refresh: "R"}) {
				t.Errorf("tokens: %+v", tokens)
			}
			if len(client.Calls.ObtainToken) != 1 || client.Calls.ObtainToken[0] != (accounts.Credentials{Username: "prof1", Password: "pw"}) {
				t.Errorf("ObtainToken calls: %+v", client.Calls.ObtainToken)
			}
			if stored := try.To(st.Get()).OrFatal(t); stored != tokens {
				t.Errorf("stored: %+v", stored)
			}
			if !testee.IsAuthenticated() {
				t.Error("not authenticated after login")
			}

			if err := testee.Logout(); err != nil {
				t.Fatal(err)
			}
			if stored := try.To(st.Get()).OrFatal(t); stored != (session.Tokens{}) {
				t.Errorf("stored after logout: %+v", stored)
			}
			if testee.IsAuthenticated() {
				t.Error("authenticated after logout")
			}
		})
	}
}

func TestLogin_Failure(t *testing.T) {
	ctx := context.Background()
	client := mock.New(t)
	expectedErr := &rest.ApiError{Status: http.StatusUnauthorized}
	client.Impl.ObtainToken = func(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error) {
		return accounts.TokenPair{}, expectedErr
	}
	st := session.NewMemoryStore()
	try.To(struct{}{}, st.Set(session.Tokens{Access: "old", Refresh: "old-r"})).OrFatal(t)

	_, err := auth.New(client, st).Login(ctx, "prof1", "wrong")
	if !errors.Is(err, expectedErr) {
		t.Errorf("unexpected error: %v", err)
	}
	if stored := try.To(st.Get()).OrFatal(t); stored.Access != "old" {
		t.Errorf("tokens should be kept: %+v", stored)
	}
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("without token, it fails as 401 without calling API", func(t *testing.T) {
		client := mock.New(t)
		_, err := auth.New(client, session.NewMemoryStore()).CurrentUser(ctx)
		if !errors.Is(err, rest.ErrUnauthorized) {
			t.Errorf("error should match ErrUnauthorized: %v", err)
		}
		if !errors.Is(err, auth.ErrNotLoggedIn) {
			t.Errorf("error should be caused by ErrNotLoggedIn: %v", err)
		}
		var apiErr *rest.ApiError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
			t.Errorf("error should be ApiError of 401: %#v", err)
		}
		if client.Calls.GetCurrentUser != 0 {
			t.Errorf("API is called: %d", client.Calls.GetCurrentUser)
		}
	})

	t.Run("with token, it asks API", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetCurrentUser = func(ctx context.Context) (accounts.User, error) {
			return accounts.User{Id: 1, Username: "prof1"}, nil
		}
		st := session.NewMemoryStore()
		try.To(struct{}{}, st.Set(session.Tokens{Access: "A"})).OrFatal(t)

		u := try.To(auth.New(client, st).CurrentUser(ctx)).OrFatal(t)
		if u.Username != "prof1" || client.Calls.GetCurrentUser != 1 {
			t.Errorf("user = %+v, calls = %d", u, client.Calls.GetCurrentUser)
		}
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatched confirmation is rejected without calling API", func(t *testing.T) {
		client := mock.New(t)
		_, err := auth.New(client, session.NewMemoryStore()).Register(ctx, accounts.Registration{
			Username: "ta1", Email: "ta1@example.com", Password: "a", PasswordConfirm: "b",
		})
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			t.Fatalf("unexpected error: %v", err)
		}
		var apierr *rest.ApiError
		if !errors.As(err, &apierr) || !apierr.IsValidation() || len(apierr.Payload.Messages("password_confirm")) != 1 {
			t.Errorf("error should be a validation error: %+v", err)
		}
		if len(client.Calls.Register) != 0 {
			t.Errorf("API is called: %+v", client.Calls.Register)
		}
	})

	t.Run("matched confirmation is sent", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.Register = func(ctx context.Context, reg accounts.Registration) (accounts.User, error) {
			return accounts.User{Id: 2, Username: reg.Username}, nil
		}
		reg := accounts.Registration{
			Username: "ta1", Email: "ta1@example.com", Password: "a", PasswordConfirm: "a",
		}
		u := try.To(auth.New(client, session.NewMemoryStore()).Register(ctx, reg)).OrFatal(t)
		if u.Username != "ta1" || len(client.Calls.Register) != 1 || client.Calls.Register[0] != reg {
			t.Errorf("user = %+v, calls = %+v", u, client.Calls.Register)
		}
	})
}

func TestClaims(t *testing.T) {
	t.Run("claims are decoded without the signing key", func(t *testing.T) {
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		access := try.To(jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":    1,
			"token_type": "access",
			"exp":        exp.Unix(),
		}).SignedString([]byte("unknown to client"))).OrFatal(t)

		st := session.NewMemoryStore()
		try.To(struct{}{}, st.Set(session.Tokens{Access: access})).OrFatal(t)

		claims := try.To(auth.New(mock.New(t), st).Claims()).OrFatal(t)
		if claims["token_type"] != "access" {
			t.Errorf("token_type: %v", claims["token_type"])
		}
		if e := try.To(claims.GetExpirationTime()).OrFatal(t); !e.Time.Equal(exp) {
			t.Errorf("exp: %v", e)
		}
	})

	t.Run("opaque token is reported", func(t *testing.T) {
		st := session.NewMemoryStore()
		try.To(struct{}{}, st.Set(session.Tokens{Access: "A"})).OrFatal(t)
		if _, err := auth.New(mock.New(t), st).Claims(); err == nil {
			t.Error("error is expected")
		}
	})

	t.Run("without token", func(t *testing.T) {
		if _, err := auth.New(mock.New(t), session.NewMemoryStore()).Claims(); !errors.Is(err, auth.ErrNotLoggedIn) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
