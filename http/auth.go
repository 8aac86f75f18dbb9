package http

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	authTokenHeader = "x-auth-token"
	userContextKey  = "auth_user"
	roleAdmin       = "admin"
)

// UserClaims is the identity the gateway issues; this service only verifies
// and consumes it, it never issues tokens.
type UserClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type tokenClaims struct {
	User UserClaims `json:"user"`
	jwt.RegisteredClaims
}

func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := c.Request().Header.Get(authTokenHeader)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
			}

			claims := &tokenClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid")
			}

			c.Set(userContextKey, claims.User)
			return next(c)
		}
	}
}

func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := userFromContext(c)
		if !ok || user.Role != roleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "access denied, admin only")
		}
		return next(c)
	}
}

func userFromContext(c echo.Context) (UserClaims, bool) {
	user, ok := c.Get(userContextKey).(UserClaims)
	return user, ok
}
