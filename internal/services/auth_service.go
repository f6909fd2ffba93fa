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

// AuthService handles password login and bearer token resolution
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Authenticate(ctx context.Context, authorization string) (*models.User, error)
}

type authService struct {
	users  repositories.UserRepository
	tokens TokenService
	hasher PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(users repositories.UserRepository, tokens TokenService, hasher PasswordHasher, logger *zap.Logger) AuthService {
	return &authService{users: users, tokens: tokens, hasher: hasher, logger: logger, now: time.Now}
}

func invalidCredentials() error {
	return common.NewAuthenticationError(common.CodeInvalidCredentials, "Invalid email or password")
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	email = common.NormalizeEmail(email)
	if err := common.RequireFields("Email and password are required", email, password); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load user", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, invalidCredentials()
	}
	if !user.IsActive() {
		return nil, common.NewAuthenticationError(common.CodeInvalidCredentials, "Account is inactive")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to issue token", err)
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	return &models.LoginResponse{User: user, Token: token}, nil
}

// Authenticate resolves an Authorization header to the live, active user it names.
// Role and status come from storage, not from the token.
func (s *authService) Authenticate(ctx context.Context, authorization string) (*models.User, error) {
	raw, ok := strings.CutPrefix(authorization, "Bearer ")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, common.NewAuthenticationError(common.CodeMissingOrInvalidHeader, "Missing or invalid authorization header")
	}

	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, common.NewAuthenticationError(common.CodeInvalidToken, "Invalid or expired token")
	}

	user, err := s.users.GetActiveByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, common.NewAuthenticationError(common.CodeUserNotFound, "User not found or inactive")
	}
	if err != nil {
		return nil, common.NewDependencyError(common.CodeInternal, "Failed to load user", err)
	}
	return user, nil
}
