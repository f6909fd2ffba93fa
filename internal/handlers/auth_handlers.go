package handlers

import (
	"net/http"

	"estateportal/internal/models"
	"estateportal/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles login and current-user requests
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login exchanges email and password for a bearer token
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user as currently stored
func (h *AuthHandlers) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}
