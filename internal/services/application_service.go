package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"estateportal/internal/common"
	"estateportal/internal/models"
	"estateportal/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgMissingFields     = "Missing required fields"
	msgDuplicatePending  = "An application with this email is already pending review. We will contact you soon."
	msgDuplicateApproved = "An application with this email has already been approved. Please check your email for login credentials."
	msgActiveElsewhere   = "Another application with this email is already pending or approved"
	msgSubmitted         = "Application submitted successfully. We will be in touch soon."
)

// Notifier sends the workflow's emails. Callers only log failures.
type Notifier interface {
	ApplicationReceived(ctx context.Context, app *models.Application) error
	ApplicationAlert(ctx context.Context, app *models.Application) error
	AccountCredentials(ctx context.Context, user *models.User, password string) error
}

type ApplicationService interface {
	SubmitInvestor(ctx context.Context, req *models.SubmitInvestorApplicationRequest) (*models.SubmitApplicationResponse, error)
	SubmitBuyer(ctx context.Context, req *models.SubmitBuyerApplicationRequest) (*models.SubmitApplicationResponse, error)
	List(ctx context.Context, appType, status string) ([]*models.Application, error)
	Review(ctx context.Context, admin *models.User, req *models.ReviewApplicationRequest) (*models.ReviewApplicationResponse, error)
	Delete(ctx context.Context, admin *models.User, appType, id string) error
}

type ApplicationServiceConfig struct {
	// EmailTempPasswords also mails provisioned users their temporary password
	EmailTempPasswords bool
}

type applicationService struct {
	apps             repositories.ApplicationRepository
	users            repositories.UserRepository
	audit            AuditLogsService
	hasher           PasswordHasher
	notifier         Notifier
	logger           *zap.Logger
	cfg              ApplicationServiceConfig
	now              func() time.Time
	generatePassword func(n int) (string, error)
}

func NewApplicationService(
	apps repositories.ApplicationRepository,
	users repositories.UserRepository,
	audit AuditLogsService,
	hasher PasswordHasher,
	notifier Notifier,
	logger *zap.Logger,
	cfg ApplicationServiceConfig,
) ApplicationService {
	return &applicationService{
		apps:             apps,
		users:            users,
		audit:            audit,
		hasher:           hasher,
		notifier:         notifier,
		logger:           logger,
		cfg:              cfg,
		now:              time.Now,
		generatePassword: GeneratePassword,
	}
}

func parseApplicationType(raw string) (models.ApplicationType, error) {
	if raw == "" {
		return models.ApplicationTypeInvestor, nil
	}
	t := models.ApplicationType(strings.ToLower(raw))
	if !t.Valid() {
		return "", common.NewValidationError("Invalid application type")
	}
	return t, nil
}

func validateContact(email, phone string) error {
	if err := common.ValidateEmail(email); err != nil {
		return err
	}
	return common.ValidatePhone(phone)
}

func (s *applicationService) SubmitInvestor(ctx context.Context, req *models.SubmitInvestorApplicationRequest) (*models.SubmitApplicationResponse, error) {
	if err := common.RequireFields(msgMissingFields, req.Email, req.FullName, req.Phone, req.InvestmentAmount); err != nil {
		return nil, err
	}
	email := common.NormalizeEmail(req.Email)
	if err := validateContact(email, req.Phone); err != nil {
		return nil, err
	}

	amount := req.InvestmentAmount
	accredited := req.AccreditedInvestor
	return s.submit(ctx, &models.Application{
		Type:               models.ApplicationTypeInvestor,
		Email:              email,
		FullName:           strings.TrimSpace(req.FullName),
		Phone:              strings.TrimSpace(req.Phone),
		InvestmentAmount:   &amount,
		AccreditedInvestor: &accredited,
		EntityType:         req.EntityType,
		CompanyName:        req.CompanyName,
		ReferralSource:     req.ReferralSource,
		Message:            req.Message,
	})
}

func (s *applicationService) SubmitBuyer(ctx context.Context, req *models.SubmitBuyerApplicationRequest) (*models.SubmitApplicationResponse, error) {
	if err := common.RequireFields(msgMissingFields, req.Email, req.FullName, req.Phone); err != nil {
		return nil, err
	}
	email := common.NormalizeEmail(req.Email)
	if err := validateContact(email, req.Phone); err != nil {
		return nil, err
	}

	preQualified := req.PreQualified
	return s.submit(ctx, &models.Application{
		Type:            models.ApplicationTypeBuyer,
		Email:           email,
		FullName:        strings.TrimSpace(req.FullName),
		Phone:           strings.TrimSpace(req.Phone),
		InterestedUnits: req.InterestedUnits,
		PreQualified:    &preQualified,
		Message:         req.Message,
	})
}

func (s *applicationService) submit(ctx context.Context, app *models.Application) (*models.SubmitApplicationResponse, error) {
	existing, err := s.apps.FindActiveByEmail(ctx, app.Type, app.Email)
	switch {
	case err == nil:
		msg := msgDuplicatePending
		if existing.Status == models.ApplicationStatusApproved {
			msg = msgDuplicateApproved
		}
		return nil, common.NewConflictError(common.CodeDuplicateApplication, msg)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to check existing applications", err)
	}

	app.ID = uuid.New()
	app.Status = models.ApplicationStatusPending
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.NewConflictError(common.CodeDuplicateApplication, msgDuplicatePending)
		}
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to submit application", err)
	}

	if err := s.notifier.ApplicationReceived(ctx, app); err != nil {
		s.logger.Warn("Failed to send application confirmation",
			zap.String("application_id", app.ID.String()), zap.Error(err))
	}
	if err := s.notifier.ApplicationAlert(ctx, app); err != nil {
		s.logger.Warn("Failed to send manager alert",
			zap.String("application_id", app.ID.String()), zap.Error(err))
	}

	return &models.SubmitApplicationResponse{Success: true, ApplicationID: app.ID, Message: msgSubmitted}, nil
}

func (s *applicationService) List(ctx context.Context, appType, status string) ([]*models.Application, error) {
	t, err := parseApplicationType(appType)
	if err != nil {
		return nil, err
	}
	var filter *models.ApplicationStatus
	if status != "" {
		st := models.ApplicationStatus(status)
		if !st.Valid() {
			return nil, common.NewValidationError("Invalid status")
		}
		filter = &st
	}

	apps, err := s.apps.List(ctx, t, filter)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to list applications", err)
	}
	return apps, nil
}

// Review applies an admin's status and notes change. Approving with CreateUser
// first provisions an investor account; if the application update then fails
// that account is deleted again.
func (s *applicationService) Review(ctx context.Context, admin *models.User, req *models.ReviewApplicationRequest) (*models.ReviewApplicationResponse, error) {
	appType, err := parseApplicationType(req.ApplicationType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ApplicationID) == "" {
		return nil, common.NewValidationError("Application ID is required")
	}
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, common.NewValidationError("Invalid application ID")
	}

	var status *models.ApplicationStatus
	if req.Status != nil {
		st := models.ApplicationStatus(*req.Status)
		if !st.Valid() {
			return nil, common.NewValidationError("Invalid status")
		}
		status = &st
	}
	review := models.ApplicationReview{Status: status, AdminNotes: req.AdminNotes}
	if review.IsEmpty() {
		return nil, common.NewValidationError("No fields to update")
	}

	app, err := s.apps.GetByID(ctx, appType, appID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NewNotFoundError("Application")
	}
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load application", err)
	}
	if status != nil && status.Active() && !app.Status.Active() {
		if err := s.checkNoOtherActive(ctx, app); err != nil {
			return nil, err
		}
	}

	var provisioned *models.User
	var tempPassword string
	if status != nil && *status == models.ApplicationStatusApproved && req.CreateUser {
		provisioned, tempPassword, err = s.provisionUser(ctx, admin, app)
		if err != nil {
			return nil, err
		}
	}

	if status != nil {
		now := s.now()
		review.ReviewedBy = &admin.ID
		review.ReviewedAt = &now
	}

	updated, err := s.apps.UpdateReview(ctx, appType, appID, review)
	if err != nil {
		if provisioned != nil {
			s.compensateProvisioning(ctx, provisioned, appID)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, common.NewNotFoundError("Application")
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, common.NewConflictError(common.CodeDuplicateApplication, msgActiveElsewhere)
		}
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to update application", err)
	}

	action := models.ActionNotesUpdated
	var newStatus interface{}
	if status != nil {
		action = models.ActionStatusUpdated
		newStatus = string(*status)
	}
	var notes interface{}
	if req.AdminNotes != nil {
		notes = *req.AdminNotes
	}
	details := models.JSONB{
		"old_status":   string(app.Status),
		"new_status":   newStatus,
		"admin_notes":  notes,
		"user_created": provisioned != nil,
	}
	if err := s.audit.LogApplicationAction(ctx, admin.ID, appType, action, &appID, details); err != nil {
		s.logger.Error("Failed to write application audit log",
			zap.String("application_id", appID.String()), zap.String("action", action), zap.Error(err))
	}

	if provisioned != nil && s.cfg.EmailTempPasswords {
		if err := s.notifier.AccountCredentials(ctx, provisioned, tempPassword); err != nil {
			s.logger.Warn("Failed to send account credentials",
				zap.String("user_id", provisioned.ID.String()), zap.Error(err))
		}
	}

	return &models.ReviewApplicationResponse{Application: updated, TempPassword: tempPassword}, nil
}

// checkNoOtherActive rejects reopening app while another pending or approved
// application holds its email.
func (s *applicationService) checkNoOtherActive(ctx context.Context, app *models.Application) error {
	other, err := s.apps.FindActiveByEmail(ctx, app.Type, app.Email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return common.NewDependencyError(common.CodeInternal, "Failed to check existing applications", err)
	case other.ID != app.ID:
		return common.NewConflictError(common.CodeDuplicateApplication, msgActiveElsewhere)
	}
	return nil
}

func (s *applicationService) provisionUser(ctx context.Context, admin *models.User, app *models.Application) (*models.User, string, error) {
	exists, err := s.users.EmailExists(ctx, app.Email, uuid.Nil)
	if err != nil {
		return nil, "", common.NewDependencyError(common.CodeInternal, "Failed to check existing users", err)
	}
	if exists {
		return nil, "", common.NewConflictError(common.CodeEmailAlreadyExists, "A user with this email already exists")
	}

	password, err := s.generatePassword(TempPasswordLength)
	if err != nil {
		return nil, "", common.NewDependencyError(common.CodeUserCreationFailed, "Failed to create user account", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", common.NewDependencyError(common.CodeUserCreationFailed, "Failed to create user account", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        app.Email,
		PasswordHash: hash,
		Name:         app.FullName,
		Role:         models.RoleInvestor,
		Status:       models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", common.NewConflictError(common.CodeEmailAlreadyExists, "A user with this email already exists")
		}
		return nil, "", common.NewDependencyError(common.CodeUserCreationFailed, "Failed to create user account", err)
	}

	details := models.JSONB{
		"application_id":   app.ID.String(),
		"application_type": string(app.Type),
		"email":            user.Email,
		"name":             user.Name,
	}
	if err := s.audit.LogAdminAction(ctx, admin.ID, models.ActionUserCreatedFromApplication, &user.ID, details); err != nil {
		s.logger.Error("Failed to write admin audit log",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return user, password, nil
}

func (s *applicationService) compensateProvisioning(ctx context.Context, user *models.User, appID uuid.UUID) {
	if err := s.users.Delete(ctx, user.ID); err != nil {
		s.logger.Error("Failed to remove user provisioned for unsaved application review",
			zap.String("user_id", user.ID.String()),
			zap.String("application_id", appID.String()),
			zap.Error(err))
		return
	}
	s.logger.Warn("Removed user provisioned for unsaved application review",
		zap.String("user_id", user.ID.String()),
		zap.String("application_id", appID.String()))
}

func (s *applicationService) Delete(ctx context.Context, admin *models.User, appType, id string) error {
	t, err := parseApplicationType(appType)
	if err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return common.NewValidationError("Application ID is required")
	}
	appID, err := uuid.Parse(id)
	if err != nil {
		return common.NewValidationError("Invalid application ID")
	}

	app, err := s.apps.GetByID(ctx, t, appID)
	if errors.Is(err, repositories.ErrNotFound) {
		return common.NewNotFoundError("Application")
	}
	if err != nil {
		return common.NewDependencyError(common.CodeInternal, "Failed to load application", err)
	}

	if err := s.apps.Delete(ctx, t, appID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.NewNotFoundError("Application")
		}
		return common.NewDependencyError(common.CodeInternal, "Failed to delete application", err)
	}

	details := models.JSONB{
		"application_id": app.ID.String(),
		"email":          app.Email,
		"full_name":      app.FullName,
		"status":         string(app.Status),
	}
	if err := s.audit.LogApplicationAction(ctx, admin.ID, t, models.ActionApplicationDeleted, nil, details); err != nil {
		s.logger.Error("Failed to write application audit log",
			zap.String("application_id", appID.String()), zap.Error(err))
	}
	return nil
}
