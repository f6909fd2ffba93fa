package handlers

import (
	"net/http"

	"estateportal/internal/models"
	"estateportal/internal/services"

	"github.com/labstack/echo/v4"
)

// DocumentHandlers handles the signed-in user's document checklist
type DocumentHandlers struct {
	documentService services.DocumentService
}

func NewDocumentHandlers(documentService services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

func (h *DocumentHandlers) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	docs, err := h.documentService.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"documents": docs})
}

func (h *DocumentHandlers) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	doc, err := h.documentService.Update(c.Request().Context(), user.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"document": doc})
}

// DownloadURL handles GET /documents/:type/url
func (h *DocumentHandlers) DownloadURL(c echo.Context) error {
	resp, err := h.documentService.DownloadURL(c.Request().Context(), c.Param("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
