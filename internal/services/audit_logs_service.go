package services

import (
	"context"
	"errors"
	"fmt"

	"estateportal/internal/common"
	"estateportal/internal/models"
	"estateportal/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditLogsService interface {
	LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetUserID *uuid.UUID, details models.JSONB) error
	LogApplicationAction(ctx context.Context, adminID uuid.UUID, appType models.ApplicationType, action string, applicationID *uuid.UUID, details models.JSONB) error
	ListAdminLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AdminAuditLog, error)
	ListApplicationLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.ApplicationAuditLog, error)
	ValidateAuditFilters(filters *models.AuditLogFilters) error
}

type auditLogsService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditLogsService(auditLogsRepo repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{
		auditLogsRepo: auditLogsRepo,
	}
}

func (s *auditLogsService) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetUserID *uuid.UUID, details models.JSONB) error {
	if action == "" {
		return errors.New("action is required")
	}
	return s.auditLogsRepo.CreateAdminLog(ctx, &models.AdminAuditLog{
		AdminID:      adminID,
		Action:       action,
		TargetUserID: targetUserID,
		Details:      details,
	})
}

func (s *auditLogsService) LogApplicationAction(ctx context.Context, adminID uuid.UUID, appType models.ApplicationType, action string, applicationID *uuid.UUID, details models.JSONB) error {
	if action == "" {
		return errors.New("action is required")
	}
	return s.auditLogsRepo.CreateApplicationLog(ctx, &models.ApplicationAuditLog{
		AdminID:         adminID,
		Action:          action,
		ApplicationID:   applicationID,
		ApplicationType: appType,
		Details:         details,
	})
}

func (s *auditLogsService) ListAdminLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AdminAuditLog, error) {
	if err := s.ValidateAuditFilters(filters); err != nil {
		return nil, err
	}
	entries, err := s.auditLogsRepo.ListAdminLogs(ctx, filters.Limit, filters.Offset)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to list audit logs", err)
	}
	return entries, nil
}

func (s *auditLogsService) ListApplicationLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.ApplicationAuditLog, error) {
	if err := s.ValidateAuditFilters(filters); err != nil {
		return nil, err
	}
	entries, err := s.auditLogsRepo.ListApplicationLogs(ctx, filters.Limit, filters.Offset)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to list audit logs", err)
	}
	return entries, nil
}

// ValidateAuditFilters checks kind and offset, and applies the default and maximum limit
func (s *auditLogsService) ValidateAuditFilters(filters *models.AuditLogFilters) error {
	if filters.Kind == "" {
		filters.Kind = models.AuditLogKindAdmin
	}
	if filters.Kind != models.AuditLogKindAdmin && filters.Kind != models.AuditLogKindApplication {
		return common.NewValidationError(fmt.Sprintf("Invalid audit log kind %q", filters.Kind))
	}
	if filters.Offset < 0 {
		return common.NewValidationError("Offset cannot be negative")
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultAuditLimit
	}
	if filters.Limit > maxAuditLimit {
		filters.Limit = maxAuditLimit
	}
	return nil
}
