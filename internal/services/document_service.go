package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estateportal/internal/common"
	"estateportal/internal/models"
	"estateportal/internal/repositories"

	"github.com/google/uuid"
)

const (
	documentActionViewed = "viewed"
	documentActionSigned = "signed"
)

type DocumentService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*models.UserDocument, error)
	Update(ctx context.Context, userID uuid.UUID, req *models.UpdateDocumentRequest) (*models.UserDocument, error)
	DownloadURL(ctx context.Context, docType string) (*models.DocumentURLResponse, error)
}

type documentService struct {
	docs   repositories.DocumentRepository
	store  DocumentStore
	urlTTL time.Duration
	now    func() time.Time
}

func NewDocumentService(docs repositories.DocumentRepository, store DocumentStore, urlTTL time.Duration) DocumentService {
	return &documentService{docs: docs, store: store, urlTTL: urlTTL, now: time.Now}
}

// List returns the user's document records, creating pending rows for any
// required document type that has none yet.
func (s *documentService) List(ctx context.Context, userID uuid.UUID) ([]*models.UserDocument, error) {
	docs, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load documents", err)
	}

	present := make(map[models.DocumentType]bool, len(docs))
	for _, d := range docs {
		present[d.DocumentType] = true
	}
	var missing []models.DocumentType
	for _, t := range models.RequiredDocumentTypes {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return docs, nil
	}

	if err := s.docs.CreateMissing(ctx, userID, missing); err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to create documents", err)
	}
	docs, err = s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load documents", err)
	}
	return docs, nil
}

func (s *documentService) Update(ctx context.Context, userID uuid.UUID, req *models.UpdateDocumentRequest) (*models.UserDocument, error) {
	docType := models.DocumentType(req.DocumentType)
	if !docType.Valid() {
		return nil, common.NewValidationError("Invalid document type")
	}
	status := models.DocumentStatus(req.Status)
	if !status.Valid() {
		return nil, common.NewValidationError("Invalid status")
	}

	doc, err := s.docs.Get(ctx, userID, docType)
	if errors.Is(err, repositories.ErrNotFound) {
		doc = &models.UserDocument{UserID: userID, DocumentType: docType}
	} else if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load document", err)
	}

	now := s.now()
	doc.Status = status
	switch {
	case req.Action == documentActionViewed && status == models.DocumentStatusViewed:
		doc.ViewedAt = &now
	case req.Action == documentActionSigned && status == models.DocumentStatusSigned:
		doc.SignedAt = &now
		if doc.ViewedAt == nil {
			doc.ViewedAt = &now
		}
	}

	if err := s.docs.Upsert(ctx, doc); err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to update document", err)
	}
	return doc, nil
}

// DownloadURL presigns the template object for docType
func (s *documentService) DownloadURL(ctx context.Context, docType string) (*models.DocumentURLResponse, error) {
	t := models.DocumentType(docType)
	if !t.Valid() {
		return nil, common.NewValidationError("Invalid document type")
	}
	url, err := s.store.PresignedURL(ctx, fmt.Sprintf("%s.pdf", t), s.urlTTL)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to create download link", err)
	}
	return &models.DocumentURLResponse{URL: url, ExpiresIn: int(s.urlTTL.Seconds())}, nil
}
