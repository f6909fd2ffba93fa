package services

import (
	"context"
	"errors"
	"strings"

	"estateportal/internal/common"
	"estateportal/internal/models"
	"estateportal/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Roles accepted when an admin creates a user
var creatableRoles = []string{string(models.RoleAdmin), string(models.RoleInvestor), string(models.RoleBuyer)}

// Roles accepted when an admin changes a user's role
var assignableRoles = []string{string(models.RoleInvestor), string(models.RoleAdmin)}

type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, admin *models.User, req *models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, admin *models.User, id string, req *models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, admin *models.User, id string) error
}

type userService struct {
	users  repositories.UserRepository
	audit  AuditLogsService
	hasher PasswordHasher
	logger *zap.Logger
}

func NewUserService(users repositories.UserRepository, audit AuditLogsService, hasher PasswordHasher, logger *zap.Logger) UserService {
	return &userService{users: users, audit: audit, hasher: hasher, logger: logger}
}

func emailTaken() error {
	return common.NewConflictError(common.CodeEmailAlreadyExists, "A user with this email already exists")
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, common.NewValidationError("Invalid user ID")
	}
	return id, nil
}

func (s *userService) logAudit(ctx context.Context, admin *models.User, action string, target *uuid.UUID, details models.JSONB) {
	if err := s.audit.LogAdminAction(ctx, admin.ID, action, target, details); err != nil {
		s.logger.Error("Failed to write admin audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to list users", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NewNotFoundError("User")
	}
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load user", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, admin *models.User, req *models.CreateUserRequest) (*models.User, error) {
	if err := common.RequireFields("Email, name, role and password are required", req.Email, req.Name, req.Role, req.Password); err != nil {
		return nil, err
	}
	email := common.NormalizeEmail(req.Email)
	if err := common.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := common.OneOf(req.Role, "Invalid role", creatableRoles...); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, email, uuid.Nil)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to check existing users", err)
	}
	if exists {
		return nil, emailTaken()
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to create user", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         models.Role(req.Role),
		Status:       models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, emailTaken()
		}
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to create user", err)
	}

	s.logAudit(ctx, admin, models.ActionUserCreated, &user.ID, models.JSONB{
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
	})
	return user, nil
}

// buildUserUpdate keeps only the fields an admin may change, validated
func buildUserUpdate(req *models.UpdateUserRequest) (models.UserUpdate, error) {
	var update models.UserUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return update, common.NewValidationError("Name cannot be empty")
		}
		update.Name = &name
	}
	if req.Email != nil {
		email := common.NormalizeEmail(*req.Email)
		if err := common.ValidateEmail(email); err != nil {
			return update, err
		}
		update.Email = &email
	}
	if req.Role != nil {
		if err := common.OneOf(*req.Role, "Invalid role", assignableRoles...); err != nil {
			return update, err
		}
		role := models.Role(*req.Role)
		update.Role = &role
	}
	if req.Status != nil {
		if err := common.OneOf(*req.Status, "Invalid status", string(models.UserStatusActive), string(models.UserStatusInactive)); err != nil {
			return update, err
		}
		status := models.UserStatus(*req.Status)
		update.Status = &status
	}
	return update, nil
}

func (s *userService) Update(ctx context.Context, admin *models.User, id string, req *models.UpdateUserRequest) (*models.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}
	update, err := buildUserUpdate(req)
	if err != nil {
		return nil, err
	}
	if userID == admin.ID && update.Status != nil && *update.Status == models.UserStatusInactive {
		return nil, common.NewValidationError("You cannot deactivate your own account")
	}
	if update.IsEmpty() {
		return nil, common.NewValidationError("No valid fields to update")
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NewNotFoundError("User")
	}
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load user", err)
	}

	if update.Email != nil && *update.Email != user.Email {
		exists, err := s.users.EmailExists(ctx, *update.Email, userID)
		if err != nil {
			return nil, common.NewDependencyError(common.CodeInternal, "Failed to check existing users", err)
		}
		if exists {
			return nil, emailTaken()
		}
	}

	update.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, emailTaken()
		case errors.Is(err, repositories.ErrNotFound):
			return nil, common.NewNotFoundError("User")
		}
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to update user", err)
	}

	s.logAudit(ctx, admin, models.ActionUserUpdated, &user.ID, models.JSONB(update.Diff()))
	return user, nil
}

func (s *userService) Delete(ctx context.Context, admin *models.User, id string) error {
	userID, err := parseUserID(id)
	if err != nil {
		return err
	}
	if userID == admin.ID {
		return common.NewValidationError("You cannot delete your own account")
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return common.NewNotFoundError("User")
	}
	if err != nil {
		return common.NewDependencyError(common.CodeInternal, "Failed to load user", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return common.NewNotFoundError("User")
		}
		return common.NewDependencyError(common.CodeInternal, "Failed to delete user", err)
	}

	s.logAudit(ctx, admin, models.ActionUserDeleted, nil, models.JSONB{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"name":    user.Name,
		"role":    string(user.Role),
	})
	return nil
}
