package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
)

func TokenObtainHandler(st *Store, iss *Issuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		cred, err := bind[accounts.Credentials](c)
		if err != nil {
			return err
		}
		u, ok := st.Authenticate(cred.Username, cred.Password)
		if !ok {
			return unauthorized("No active account found with the given credentials")
		}
		pair, err := iss.Issue(u)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, pair)
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

func TokenRefreshHandler(st *Store, iss *Issuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bind[refreshRequest](c)
		if err != nil {
			return err
		}
		claims, err := iss.Verify(req.Refresh, TokenTypeRefresh)
		if err != nil {
			return unauthorized("Token is invalid or expired")
		}
		u, err := st.GetUser(claims.UserId)
		if err != nil {
			return unauthorized("Token is invalid or expired")
		}
		pair, err := iss.Issue(u)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, refreshResponse{Access: pair.Access})
	}
}

func RegisterHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		reg, err := bind[accounts.Registration](c)
		if err != nil {
			return err
		}
		u, err := st.Register(reg, false)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusCreated, u)
	}
}

func CurrentUserHandler(st *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsOf(c)
		if !ok {
			return unauthorized("Authentication credentials were not provided.")
		}
		u, err := st.GetUser(claims.UserId)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, apierr.ForDetail("User not found"))
		}
		return c.JSON(http.StatusOK, u)
	}
}
