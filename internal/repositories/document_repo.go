package repositories

import (
	"context"
	"fmt"

	"estateportal/internal/models"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserDocument, error)
	Get(ctx context.Context, userID uuid.UUID, docType models.DocumentType) (*models.UserDocument, error)
	CreateMissing(ctx context.Context, userID uuid.UUID, docTypes []models.DocumentType) error
	Upsert(ctx context.Context, doc *models.UserDocument) error
}

type documentRepo struct {
	db DBTX
}

func NewDocumentRepo(db DBTX) DocumentRepository {
	return &documentRepo{db: db}
}

const documentColumns = `id, user_id, document_type, status, viewed_at, signed_at, created_at, updated_at`

func scanDocument(row rowScanner) (*models.UserDocument, error) {
	doc := &models.UserDocument{}
	var docType, status string
	if err := row.Scan(&doc.ID, &doc.UserID, &docType, &status, &doc.ViewedAt, &doc.SignedAt, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.DocumentType = models.DocumentType(docType)
	doc.Status = models.DocumentStatus(status)
	return doc, nil
}

func (r *documentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM user_documents WHERE user_id = $1 ORDER BY created_at, document_type`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.UserDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *documentRepo) Get(ctx context.Context, userID uuid.UUID, docType models.DocumentType) (*models.UserDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM user_documents WHERE user_id = $1 AND document_type = $2`
	doc, err := scanDocument(r.db.QueryRow(ctx, query, userID, string(docType)))
	if err != nil {
		return nil, translate(err)
	}
	return doc, nil
}

// CreateMissing inserts pending rows for docTypes, leaving existing rows untouched
func (r *documentRepo) CreateMissing(ctx context.Context, userID uuid.UUID, docTypes []models.DocumentType) error {
	if len(docTypes) == 0 {
		return nil
	}
	types := make([]string, len(docTypes))
	for i, t := range docTypes {
		types[i] = string(t)
	}
	query := `
		INSERT INTO user_documents (id, user_id, document_type, status, created_at, updated_at)
		SELECT gen_random_uuid(), $1, t, 'pending', NOW(), NOW()
		FROM unnest($2::text[]) AS t
		ON CONFLICT (user_id, document_type) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, types); err != nil {
		return fmt.Errorf("failed to seed documents: %w", err)
	}
	return nil
}

// Upsert writes doc keyed by (user_id, document_type)
func (r *documentRepo) Upsert(ctx context.Context, doc *models.UserDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	query := `
		INSERT INTO user_documents (id, user_id, document_type, status, viewed_at, signed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id, document_type) DO UPDATE
		SET status = EXCLUDED.status, viewed_at = EXCLUDED.viewed_at, signed_at = EXCLUDED.signed_at, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, doc.ID, doc.UserID, string(doc.DocumentType), string(doc.Status), doc.ViewedAt, doc.SignedAt).
		Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}
