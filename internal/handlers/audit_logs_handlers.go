package handlers

import (
	"net/http"

	"estateportal/internal/common"
	"estateportal/internal/models"
	"estateportal/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditLogsHandlers exposes the admin and application audit trails
type AuditLogsHandlers struct {
	auditLogsService services.AuditLogsService
}

func NewAuditLogsHandlers(auditLogsService services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditLogsService: auditLogsService}
}

// ListAuditLogs handles GET /audit-logs?kind=admin|application&limit=&offset=
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()

	filters := &models.AuditLogFilters{Kind: models.AuditLogKind(c.QueryParam("kind"))}
	if err := echo.QueryParamsBinder(c).
		Int("limit", &filters.Limit).
		Int("offset", &filters.Offset).
		BindError(); err != nil {
		return common.NewValidationError("limit and offset must be integers")
	}
	if err := h.auditLogsService.ValidateAuditFilters(filters); err != nil {
		return err
	}

	var entries interface{}
	switch filters.Kind {
	case models.AuditLogKindApplication:
		logs, err := h.auditLogsService.ListApplicationLogs(ctx, filters)
		if err != nil {
			return err
		}
		if logs == nil {
			logs = []*models.ApplicationAuditLog{}
		}
		entries = logs
	default:
		logs, err := h.auditLogsService.ListAdminLogs(ctx, filters)
		if err != nil {
			return err
		}
		if logs == nil {
			logs = []*models.AdminAuditLog{}
		}
		entries = logs
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"kind":    filters.Kind,
		"limit":   filters.Limit,
		"offset":  filters.Offset,
	})
}
