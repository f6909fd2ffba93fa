package models

import (
	"time"

	"github.com/google/uuid"
)

// JSONB represents PostgreSQL JSONB type
type JSONB map[string]interface{}

// Action constants for audit logs
const (
	ActionUserCreated                = "user_created"
	ActionUserUpdated                = "user_updated"
	ActionUserDeleted                = "user_deleted"
	ActionUserCreatedFromApplication = "user_created_from_application"
	ActionStatusUpdated              = "status_updated"
	ActionNotesUpdated               = "notes_updated"
	ActionApplicationDeleted         = "application_deleted"
)

type AuditLogKind string

const (
	AuditLogKindAdmin       AuditLogKind = "admin"
	AuditLogKindApplication AuditLogKind = "application"
)

// AdminAuditLog records a user-management action
type AdminAuditLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AdminID      uuid.UUID  `json:"admin_id" db:"admin_id"`
	Action       string     `json:"action" db:"action"`
	TargetUserID *uuid.UUID `json:"target_user_id" db:"target_user_id"`
	Details      JSONB      `json:"details" db:"details"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// ApplicationAuditLog records an action taken on an application
type ApplicationAuditLog struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	AdminID         uuid.UUID       `json:"admin_id" db:"admin_id"`
	Action          string          `json:"action" db:"action"`
	ApplicationID   *uuid.UUID      `json:"application_id" db:"application_id"`
	ApplicationType ApplicationType `json:"application_type" db:"application_type"`
	Details         JSONB           `json:"details" db:"details"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// AuditLogFilters represents filters for querying audit logs
type AuditLogFilters struct {
	Kind   AuditLogKind `json:"kind"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
