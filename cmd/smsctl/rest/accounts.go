package rest

import (
	"context"
	"net/http"

	"github.com/opst/smsctl/pkg/api/types/accounts"
)

func (c *client) ObtainToken(ctx context.Context, cred accounts.Credentials) (accounts.TokenPair, error) {
	return call[accounts.TokenPair](
		ctx, c, http.MethodPost, []string{"auth", "token"},
		MessageFor{
			Status4xx: "wrong username or password",
			Status5xx: "server error on signing in",
		},
		withoutToken(), withBody(cred),
	)
}

func (c *client) GetCurrentUser(ctx context.Context) (accounts.User, error) {
	return call[accounts.User](
		ctx, c, http.MethodGet, []string{"accounts", "users", "me"},
		MessageFor{Status5xx: "server error on fetching current user"},
	)
}

func (c *client) Register(ctx context.Context, reg accounts.Registration) (accounts.User, error) {
	return call[accounts.User](
		ctx, c, http.MethodPost, []string{"accounts", "users"},
		MessageFor{
			Status4xx: "cannot register the user",
			Status5xx: "server error on registering user",
		},
		withoutToken(), withBody(reg),
	)
}
