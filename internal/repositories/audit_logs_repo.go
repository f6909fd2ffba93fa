package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estateportal/internal/models"

	"github.com/google/uuid"
)

// AuditLogsRepository appends to and reads the admin and application audit logs.
// Entries are never updated or deleted.
type AuditLogsRepository interface {
	CreateAdminLog(ctx context.Context, entry *models.AdminAuditLog) error
	CreateApplicationLog(ctx context.Context, entry *models.ApplicationAuditLog) error
	ListAdminLogs(ctx context.Context, limit, offset int) ([]*models.AdminAuditLog, error)
	ListApplicationLogs(ctx context.Context, limit, offset int) ([]*models.ApplicationAuditLog, error)
}

type auditLogsRepo struct {
	db DBTX
}

func NewAuditLogsRepo(db DBTX) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func marshalDetails(details models.JSONB) ([]byte, error) {
	if details == nil {
		details = models.JSONB{}
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal details: %w", err)
	}
	return b, nil
}

func unmarshalDetails(b []byte) (models.JSONB, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var details models.JSONB
	if err := json.Unmarshal(b, &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal details: %w", err)
	}
	return details, nil
}

func (r *auditLogsRepo) CreateAdminLog(ctx context.Context, entry *models.AdminAuditLog) error {
	entry.CreatedAt = time.Now()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO admin_audit_log (id, admin_id, action, target_user_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query, entry.ID, entry.AdminID, entry.Action, entry.TargetUserID, details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin audit log: %w", err)
	}
	return nil
}

func (r *auditLogsRepo) CreateApplicationLog(ctx context.Context, entry *models.ApplicationAuditLog) error {
	entry.CreatedAt = time.Now()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO application_audit_log (id, admin_id, action, application_id, application_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.Exec(ctx, query, entry.ID, entry.AdminID, entry.Action, entry.ApplicationID,
		string(entry.ApplicationType), details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application audit log: %w", err)
	}
	return nil
}

func (r *auditLogsRepo) ListAdminLogs(ctx context.Context, limit, offset int) ([]*models.AdminAuditLog, error) {
	query := `
		SELECT id, admin_id, action, target_user_id, details, created_at
		FROM admin_audit_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin audit logs: %w", err)
	}
	defer rows.Close()

	entries := []*models.AdminAuditLog{}
	for rows.Next() {
		entry := &models.AdminAuditLog{}
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.AdminID, &entry.Action, &entry.TargetUserID, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin audit log: %w", err)
		}
		if entry.Details, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *auditLogsRepo) ListApplicationLogs(ctx context.Context, limit, offset int) ([]*models.ApplicationAuditLog, error) {
	query := `
		SELECT id, admin_id, action, application_id, application_type, details, created_at
		FROM application_audit_log
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list application audit logs: %w", err)
	}
	defer rows.Close()

	entries := []*models.ApplicationAuditLog{}
	for rows.Next() {
		entry := &models.ApplicationAuditLog{}
		var appType string
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.AdminID, &entry.Action, &entry.ApplicationID, &appType, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application audit log: %w", err)
		}
		entry.ApplicationType = models.ApplicationType(appType)
		if entry.Details, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
