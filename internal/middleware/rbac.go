package middleware

import (
	"estateportal/internal/common"
	"estateportal/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireRole allows the request through only when the authenticated user
// holds one of roles. It must run after JWTMiddleware.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return common.NewAuthenticationError(common.CodeMissingOrInvalidHeader, "Missing or invalid authorization header")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return common.NewAuthorizationError("Insufficient permissions")
		}
	}
}

// RequireAdmin is RequireRole(models.RoleAdmin)
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin)
}
