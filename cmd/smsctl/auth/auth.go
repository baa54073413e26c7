// Package auth signs in and out of the API, keeping tokens in a session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
)

var (
	// ErrNotLoggedIn is returned when the session has no access token.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrPasswordMismatch is returned when password confirmation differs from password.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Accounts is the part of the API client for accounts.
type Accounts interface {
	ObtainToken(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error)
	GetCurrentUser(ctx context.Context) (accounts.User, error)
	Register(ctx context.Context, reg accounts.Registration) (accounts.User, error)
}

type Session struct {
	client Accounts
	store  session.Store
}

func New(client Accounts, store session.Store) *Session {
	return &Session{client: client, store: store}
}

// Login exchanges username and password to tokens, and stores them.
//
// On failure, the stored tokens are kept as they are.
func (s *Session) Login(ctx context.Context, username, password string) (session.Tokens, error) {
	pair, err := s.client.ObtainToken(ctx, accounts.Credentials{Username: username, Password: password})
	if err != nil {
		return session.Tokens{}, err
	}
	t := session.Tokens{Access: pair.Access, Refresh: pair.Refresh}
	if err := s.store.Set(t); err != nil {
		return session.Tokens{}, fmt.Errorf("signed in, but can not save tokens: %w", err)
	}
	return t, nil
}

// Logout forgets both tokens. The server is not notified.
func (s *Session) Logout() error {
	return s.store.Clear()
}

// IsAuthenticated reports an access token is stored.
//
// The token is not verified nor checked for expiry.
func (s *Session) IsAuthenticated() bool {
	t, err := s.store.Get()
	return err == nil && t.HasAccess()
}

// CurrentUser asks the API who is signed in.
//
// Without stored token, it returns *rest.ApiError of 401 caused by ErrNotLoggedIn.
func (s *Session) CurrentUser(ctx context.Context) (accounts.User, error) {
	if !s.IsAuthenticated() {
		return accounts.User{}, &rest.ApiError{
			Status:  http.StatusUnauthorized,
			Summary: ErrNotLoggedIn.Error(),
			Cause:   ErrNotLoggedIn,
		}
	}
	return s.client.GetCurrentUser(ctx)
}

// Register creates a new account. It does not sign in.
//
// When the password confirmation does not match, nothing is sent and
// *rest.ApiError with a message for "password_confirm" is returned.
func (s *Session) Register(ctx context.Context, reg accounts.Registration) (accounts.User, error) {
	if reg.Password != reg.PasswordConfirm {
		return accounts.User{}, &rest.ApiError{
			Payload: apierr.ForFields("password_confirm", ErrPasswordMismatch.Error()),
			Cause:   ErrPasswordMismatch,
		}
	}
	return s.client.Register(ctx, reg)
}

// Claims decodes the stored access token for display.
//
// The signature is NOT verified. Do not trust the claims for any decision.
func (s *Session) Claims() (jwt.MapClaims, error) {
	t, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	if !t.HasAccess() {
		return nil, ErrNotLoggedIn
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.Access, claims); err != nil {
		return nil, fmt.Errorf("access token is not a JWT: %w", err)
	}
	return claims, nil
}
