package repositories

import (
	"context"
	"fmt"
	"strings"

	"estateportal/internal/models"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, appType models.ApplicationType, id uuid.UUID) (*models.Application, error)
	FindActiveByEmail(ctx context.Context, appType models.ApplicationType, email string) (*models.Application, error)
	List(ctx context.Context, appType models.ApplicationType, status *models.ApplicationStatus) ([]*models.Application, error)
	UpdateReview(ctx context.Context, appType models.ApplicationType, id uuid.UUID, review models.ApplicationReview) (*models.Application, error)
	Delete(ctx context.Context, appType models.ApplicationType, id uuid.UUID) error
}

// applicationTable describes the storage of one application variant
type applicationTable struct {
	name    string
	columns string
	scan    func(row rowScanner) (*models.Application, error)
}

var applicationTables = map[models.ApplicationType]applicationTable{
	models.ApplicationTypeInvestor: {
		name: "investor_applications",
		columns: `id, email, full_name, phone, investment_amount, accredited_investor, entity_type, company_name,
			referral_source, message, status, admin_notes, reviewed_by, reviewed_at, created_at, updated_at`,
		scan: func(row rowScanner) (*models.Application, error) {
			app := &models.Application{Type: models.ApplicationTypeInvestor}
			var status string
			err := row.Scan(&app.ID, &app.Email, &app.FullName, &app.Phone, &app.InvestmentAmount, &app.AccreditedInvestor,
				&app.EntityType, &app.CompanyName, &app.ReferralSource, &app.Message, &status, &app.AdminNotes,
				&app.ReviewedBy, &app.ReviewedAt, &app.CreatedAt, &app.UpdatedAt)
			if err != nil {
				return nil, err
			}
			app.Status = models.ApplicationStatus(status)
			return app, nil
		},
	},
	models.ApplicationTypeBuyer: {
		name: "buyer_applications",
		columns: `id, email, full_name, phone, interested_units, pre_qualified, message, status, admin_notes,
			reviewed_by, reviewed_at, created_at, updated_at`,
		scan: func(row rowScanner) (*models.Application, error) {
			app := &models.Application{Type: models.ApplicationTypeBuyer}
			var status string
			err := row.Scan(&app.ID, &app.Email, &app.FullName, &app.Phone, &app.InterestedUnits, &app.PreQualified,
				&app.Message, &status, &app.AdminNotes, &app.ReviewedBy, &app.ReviewedAt, &app.CreatedAt, &app.UpdatedAt)
			if err != nil {
				return nil, err
			}
			app.Status = models.ApplicationStatus(status)
			return app, nil
		},
	},
}

type applicationRepo struct {
	db DBTX
}

func NewApplicationRepo(db DBTX) ApplicationRepository {
	return &applicationRepo{db: db}
}

func tableFor(appType models.ApplicationType) (applicationTable, error) {
	t, ok := applicationTables[appType]
	if !ok {
		return applicationTable{}, fmt.Errorf("unknown application type %q", appType)
	}
	return t, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	var err error
	switch app.Type {
	case models.ApplicationTypeInvestor:
		query := `
			INSERT INTO investor_applications (id, email, full_name, phone, investment_amount, accredited_investor,
				entity_type, company_name, referral_source, message, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		err = r.db.QueryRow(ctx, query, app.ID, app.Email, app.FullName, app.Phone, app.InvestmentAmount,
			app.AccreditedInvestor, app.EntityType, app.CompanyName, app.ReferralSource, app.Message, string(app.Status)).
			Scan(&app.CreatedAt, &app.UpdatedAt)
	case models.ApplicationTypeBuyer:
		query := `
			INSERT INTO buyer_applications (id, email, full_name, phone, interested_units, pre_qualified, message,
				status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		err = r.db.QueryRow(ctx, query, app.ID, app.Email, app.FullName, app.Phone, app.InterestedUnits,
			app.PreQualified, app.Message, string(app.Status)).
			Scan(&app.CreatedAt, &app.UpdatedAt)
	default:
		return fmt.Errorf("unknown application type %q", app.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to create application: %w", translate(err))
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, appType models.ApplicationType, id uuid.UUID) (*models.Application, error) {
	t, err := tableFor(appType)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, t.columns, t.name)
	app, err := t.scan(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return app, nil
}

// FindActiveByEmail returns the newest pending or approved application for email
func (r *applicationRepo) FindActiveByEmail(ctx context.Context, appType models.ApplicationType, email string) (*models.Application, error) {
	t, err := tableFor(appType)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1 AND status IN ('pending', 'approved') ORDER BY created_at DESC LIMIT 1`,
		t.columns, t.name)
	app, err := t.scan(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, translate(err)
	}
	return app, nil
}

func (r *applicationRepo) List(ctx context.Context, appType models.ApplicationType, status *models.ApplicationStatus) ([]*models.Application, error) {
	t, err := tableFor(appType)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s`, t.columns, t.name)
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// UpdateReview writes the non-nil review fields and returns the updated row
func (r *applicationRepo) UpdateReview(ctx context.Context, appType models.ApplicationType, id uuid.UUID, review models.ApplicationReview) (*models.Application, error) {
	t, err := tableFor(appType)
	if err != nil {
		return nil, err
	}

	args := []any{id}
	var sets []string
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if review.Status != nil {
		add("status", string(*review.Status))
	}
	if review.ReviewedBy != nil {
		add("reviewed_by", *review.ReviewedBy)
	}
	if review.ReviewedAt != nil {
		add("reviewed_at", *review.ReviewedAt)
	}
	if review.AdminNotes != nil {
		add("admin_notes", *review.AdminNotes)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`UPDATE %s SET %s, updated_at = NOW() WHERE id = $1 RETURNING %s`,
		t.name, strings.Join(sets, ", "), t.columns)
	app, err := t.scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return app, nil
}

func (r *applicationRepo) Delete(ctx context.Context, appType models.ApplicationType, id uuid.UUID) error {
	t, err := tableFor(appType)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
