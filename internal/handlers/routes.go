package handlers

import (
	"estateportal/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler set served by the API
type Handlers struct {
	Auth         *AuthHandlers
	Applications *ApplicationHandlers
	Users        *UserHandlers
	Documents    *DocumentHandlers
	AuditLogs    *AuditLogsHandlers
	Health       *HealthHandlers
}

// RegisterRoutes mounts the API on e. Bearer auth and the admin gate are
// attached per route so unknown paths still answer 404.
func RegisterRoutes(e *echo.Echo, h *Handlers, auth middleware.Authenticator) {
	authed := middleware.JWTMiddleware(auth)
	admin := []echo.MiddlewareFunc{authed, middleware.RequireAdmin()}

	e.GET("/health", h.Health.HealthCheck)

	e.POST("/auth/login", h.Auth.Login)
	e.GET("/auth/me", h.Auth.Me, authed)

	e.POST("/applications", h.Applications.SubmitInvestor)
	e.POST("/applications/buyer", h.Applications.SubmitBuyer)
	e.GET("/applications/admin", h.Applications.List, admin...)
	e.PATCH("/applications/admin", h.Applications.Review, admin...)
	e.DELETE("/applications/admin", h.Applications.Delete, admin...)

	e.GET("/users", h.Users.List, admin...)
	e.POST("/users", h.Users.Create, admin...)
	e.PATCH("/users/:id", h.Users.Update, admin...)
	e.DELETE("/users/:id", h.Users.Delete, admin...)
	e.GET("/users/:id/documents", h.Users.Documents, admin...)

	e.GET("/documents", h.Documents.List, authed)
	e.PATCH("/documents", h.Documents.Update, authed)
	e.GET("/documents/:type/url", h.Documents.DownloadURL, authed)

	e.GET("/audit-logs", h.AuditLogs.ListAuditLogs, admin...)
}
