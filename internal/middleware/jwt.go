package middleware

import (
	"context"

	"estateportal/internal/common"
	"estateportal/internal/models"

	"github.com/labstack/echo/v4"
)

// UserContextKey is the echo.Context key holding the authenticated *models.User
const UserContextKey = "user"

// Authenticator resolves an Authorization header value to an active user
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*models.User, error)
}

// JWTMiddleware rejects requests without a valid bearer token for an active
// user. The user loaded from storage is attached to both the echo context and
// the request context.
func JWTMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			c.SetRequest(c.Request().WithContext(common.WithUser(c.Request().Context(), user)))

			return next(c)
		}
	}
}

// CurrentUser returns the user attached by JWTMiddleware
func CurrentUser(c echo.Context) (*models.User, bool) {
	if user, ok := c.Get(UserContextKey).(*models.User); ok && user != nil {
		return user, true
	}
	return common.GetUserFromContext(c.Request().Context())
}
