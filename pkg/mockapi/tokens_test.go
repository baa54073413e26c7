package mockapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/opst/smsctl/internal/testutils/http"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
	"github.com/opst/smsctl/pkg/mockapi"
	"github.com/opst/smsctl/pkg/utils/try"
)

func TestBearer(t *testing.T) {
	iss := mockapi.NewIssuer([]byte("secret"), time.Hour)
	pair := try.To(iss.Issue(accounts.User{Id: 1, Username: "prof1"})).OrFatal(t)
	expired := try.To(
		mockapi.NewIssuer([]byte("secret"), -time.Minute).Issue(accounts.User{Id: 1, Username: "prof1"}),
	).OrFatal(t)

	type when struct {
		options []httptestutil.RequestOption
		skip    func(echo.Context) bool
	}
	type then struct {
		passed bool
		detail string
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			e := echo.New()
			c, _ := httptestutil.Get(e, "/api/v1/students/", when.options...)

			passed := false
			err := mockapi.Bearer(iss, when.skip)(func(echo.Context) error {
				passed = true
				return nil
			})(c)

			if passed != then.passed {
				t.Errorf("passed: actual = %v, expected = %v", passed, then.passed)
			}
			if then.passed {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var herr *echo.HTTPError
			if !errors.As(err, &herr) || herr.Code != http.StatusUnauthorized {
				t.Fatalf("error should be 401: %v", err)
			}
			if p, ok := herr.Message.(apierr.Payload); !ok || p.Detail != then.detail {
				t.Errorf("message: actual = %#v, expected detail = %q", herr.Message, then.detail)
			}
		}
	}

	t.Run("access token is accepted", theory(
		when{options: []httptestutil.RequestOption{httptestutil.WithBearer(pair.Access)}},
		then{passed: true},
	))

	t.Run("skipped requests pass without token", theory(
		when{skip: func(echo.Context) bool { return true }},
		then{passed: true},
	))

	t.Run("missing header is rejected", theory(
		when{},
		then{detail: "Authentication credentials were not provided."},
	))

	t.Run("header without scheme is rejected", theory(
		when{options: []httptestutil.RequestOption{httptestutil.WithHeader(echo.HeaderAuthorization, pair.Access)}},
		then{detail: "Authorization header must contain two space-delimited values"},
	))

	t.Run("refresh token is rejected", theory(
		when{options: []httptestutil.RequestOption{httptestutil.WithBearer(pair.Refresh)}},
		then{detail: "Given token not valid for any token type"},
	))

	t.Run("expired token is rejected", theory(
		when{options: []httptestutil.RequestOption{httptestutil.WithBearer(expired.Access)}},
		then{detail: "Given token not valid for any token type"},
	))
}

func TestTokenObtainHandler(t *testing.T) {
	st := mockapi.NewStore()
	try.To(st.AddUser("prof1", "pw", true)).OrFatal(t)
	iss := mockapi.NewIssuer([]byte("secret"), time.Hour)
	e := echo.New()

	t.Run("pair of tokens is issued for the right password", func(t *testing.T) {
		c, resp, err := httptestutil.Post(e, "/api/v1/auth/token/", accounts.Credentials{Username: "prof1", Password: "pw"})
		if err != nil {
			t.Fatal(err)
		}
		if err := mockapi.TokenObtainHandler(st, iss)(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d", resp.Code)
		}
		pair := try.To(decodeJSON[accounts.TokenPair](resp.Body.Bytes())).OrFatal(t)
		claims := try.To(iss.Verify(pair.Access, mockapi.TokenTypeAccess)).OrFatal(t)
		if claims.Username != "prof1" {
			t.Errorf("claims = %+v", claims)
		}
		try.To(iss.Verify(pair.Refresh, mockapi.TokenTypeRefresh)).OrFatal(t)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		c, _, err := httptestutil.Post(e, "/api/v1/auth/token/", accounts.Credentials{Username: "prof1", Password: "wrong"})
		if err != nil {
			t.Fatal(err)
		}
		err = mockapi.TokenObtainHandler(st, iss)(c)
		var herr *echo.HTTPError
		if !errors.As(err, &herr) || herr.Code != http.StatusUnauthorized {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func decodeJSON[T any](b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}
