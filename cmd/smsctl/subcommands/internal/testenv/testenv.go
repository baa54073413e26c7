// Package testenv runs the in-memory API server for tests of commands.
package testenv

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	prof "github.com/opst/smsctl/cmd/smsctl/config/profiles"
	"github.com/opst/smsctl/cmd/smsctl/config/session"
	"github.com/opst/smsctl/cmd/smsctl/rest"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	"github.com/opst/smsctl/pkg/mockapi"
	"github.com/opst/smsctl/pkg/utils/try"
)

const (
	Username = "prof1"
	Password = "pw"
)

// Server starts the API server with an instructor account (Username, Password).
//
// It is closed after the test.
func Server(t *testing.T) (*prof.SmsProfile, *mockapi.Store) {
	t.Helper()
	st := mockapi.NewStore()
	try.To(st.AddUser(Username, Password, true)).OrFatal(t)
	svr := httptest.NewServer(mockapi.New(st, mockapi.NewIssuer([]byte("secret"), time.Hour)))
	t.Cleanup(svr.Close)
	return &prof.SmsProfile{ApiRoot: svr.URL + mockapi.DefaultRoot}, st
}

// SignedIn returns a client of the API server which sends the token of the instructor.
func SignedIn(t *testing.T) (rest.SmsClient, *mockapi.Store) {
	t.Helper()
	profile, st := Server(t)

	anon := try.To(rest.NewClient(profile, nil)).OrFatal(t)
	pair := try.To(anon.ObtainToken(
		context.Background(), accounts.Credentials{Username: Username, Password: Password},
	)).OrFatal(t)

	client := try.To(rest.NewClient(profile, rest.TokenSourceFunc(func() (string, error) {
		return pair.Access, nil
	}))).OrFatal(t)
	return client, st
}

// WithSession returns a client which sends the access token in the returned session store.
//
// The store is empty at first.
func WithSession(t *testing.T) (rest.SmsClient, *session.MemoryStore, *mockapi.Store) {
	t.Helper()
	profile, st := Server(t)
	store := session.NewMemoryStore()
	client := try.To(rest.NewClient(
		profile, rest.TokenSourceFunc(session.AccessToken(store)),
	)).OrFatal(t)
	return client, store, st
}
