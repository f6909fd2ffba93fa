package handlers

import (
	"net/http"

	"estateportal/internal/models"
	"estateportal/internal/services"

	"github.com/labstack/echo/v4"
)

// ApplicationHandlers serves the public application forms and the admin review queue
type ApplicationHandlers struct {
	applicationService services.ApplicationService
}

func NewApplicationHandlers(applicationService services.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{applicationService: applicationService}
}

func (h *ApplicationHandlers) SubmitInvestor(c echo.Context) error {
	var req models.SubmitInvestorApplicationRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	resp, err := h.applicationService.SubmitInvestor(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandlers) SubmitBuyer(c echo.Context) error {
	var req models.SubmitBuyerApplicationRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	resp, err := h.applicationService.SubmitBuyer(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// List handles GET /applications/admin?type=&status=
func (h *ApplicationHandlers) List(c echo.Context) error {
	apps, err := h.applicationService.List(c.Request().Context(), c.QueryParam("type"), c.QueryParam("status"))
	if err != nil {
		return err
	}
	if apps == nil {
		apps = []*models.Application{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"applications": apps})
}

// Review handles PATCH /applications/admin
func (h *ApplicationHandlers) Review(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.ReviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	resp, err := h.applicationService.Review(c.Request().Context(), admin, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /applications/admin?id=&type=
func (h *ApplicationHandlers) Delete(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.applicationService.Delete(c.Request().Context(), admin, c.QueryParam("type"), c.QueryParam("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
