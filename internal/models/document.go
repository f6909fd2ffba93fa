package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeNDA          DocumentType = "nda"
	DocumentTypeMemorandum   DocumentType = "memorandum"
	DocumentTypeSubscription DocumentType = "subscription"
	DocumentTypeOperating    DocumentType = "operating"
)

// RequiredDocumentTypes lists every document each user must have a record for
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeNDA,
	DocumentTypeMemorandum,
	DocumentTypeSubscription,
	DocumentTypeOperating,
}

func (t DocumentType) Valid() bool {
	for _, r := range RequiredDocumentTypes {
		if t == r {
			return true
		}
	}
	return false
}

type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "pending"
	DocumentStatusViewed    DocumentStatus = "viewed"
	DocumentStatusSigned    DocumentStatus = "signed"
	DocumentStatusCompleted DocumentStatus = "completed"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusViewed, DocumentStatusSigned, DocumentStatusCompleted:
		return true
	}
	return false
}

type UserDocument struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	UserID       uuid.UUID      `json:"user_id" db:"user_id"`
	DocumentType DocumentType   `json:"document_type" db:"document_type"`
	Status       DocumentStatus `json:"status" db:"status"`
	ViewedAt     *time.Time     `json:"viewed_at" db:"viewed_at"`
	SignedAt     *time.Time     `json:"signed_at" db:"signed_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// UpdateDocumentRequest is the body of PATCH /documents
type UpdateDocumentRequest struct {
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
	Action       string `json:"action"`
}

type DocumentURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
