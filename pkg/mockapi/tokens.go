package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/opst/smsctl/pkg/api/types/accounts"
	apierr "github.com/opst/smsctl/pkg/api/types/errors"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is claims of tokens issued by Issuer.
type Claims struct {
	TokenType string `json:"token_type"`
	UserId    int    `json:"user_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

var ErrTokenInvalid = errors.New("token is invalid")

// Issuer signs and verifies tokens with HS256.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret []byte, accessTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: 24 * time.Hour,
		now:        time.Now,
	}
}

func (i *Issuer) sign(u accounts.User, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		TokenType: tokenType,
		UserId:    u.Id,
		Username:  u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", u.Id),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Issue creates a pair of access and refresh token for the user.
func (i *Issuer) Issue(u accounts.User) (accounts.TokenPair, error) {
	access, err := i.sign(u, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return accounts.TokenPair{}, err
	}
	refresh, err := i.sign(u, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return accounts.TokenPair{}, err
	}
	return accounts.TokenPair{Access: access, Refresh: refresh}, nil
}

// Verify checks signature, expiry and type of the token.
func (i *Issuer) Verify(token string, tokenType string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: token type is %q", ErrTokenInvalid, claims.TokenType)
	}
	return claims, nil
}

const keyClaims = "claims"

func unauthorized(detail string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apierr.ForDetail(detail))
}

// Bearer requires a valid access token in Authorization header.
//
// Requests which skip returns true are passed without check.
func Bearer(i *Issuer, skip func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip != nil && skip(c) {
				return next(c)
			}
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return unauthorized("Authentication credentials were not provided.")
			}
			scheme, token, ok := strings.Cut(auth, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return unauthorized("Authorization header must contain two space-delimited values")
			}
			claims, err := i.Verify(token, TokenTypeAccess)
			if err != nil {
				c.Logger().Debugf("token rejected: %s", err)
				return unauthorized("Given token not valid for any token type")
			}
			c.Set(keyClaims, claims)
			return next(c)
		}
	}
}

func claimsOf(c echo.Context) (*Claims, bool) {
	cl, ok := c.Get(keyClaims).(*Claims)
	return cl, ok
}
