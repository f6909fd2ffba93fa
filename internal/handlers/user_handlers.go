package handlers

import (
	"net/http"

	"estateportal/internal/models"
	"estateportal/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles admin user management
type UserHandlers struct {
	userService     services.UserService
	documentService services.DocumentService
}

func NewUserHandlers(userService services.UserService, documentService services.DocumentService) *UserHandlers {
	return &UserHandlers{userService: userService, documentService: documentService}
}

func (h *UserHandlers) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

func (h *UserHandlers) Create(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	user, err := h.userService.Create(c.Request().Context(), admin, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandlers) Update(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	user, err := h.userService.Update(c.Request().Context(), admin, c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandlers) Delete(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), admin, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// Documents lists another user's documents, seeding missing ones like GET /documents
func (h *UserHandlers) Documents(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.userService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	docs, err := h.documentService.List(ctx, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"documents": docs})
}
