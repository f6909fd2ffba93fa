package services

import (
	"context"
	"testing"
	"time"

	"estateportal/internal/common"
	"estateportal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, appType models.ApplicationType, id uuid.UUID) (*models.Application, error) {
	args := m.Called(ctx, appType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindActiveByEmail(ctx context.Context, appType models.ApplicationType, email string) (*models.Application, error) {
	args := m.Called(ctx, appType, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, appType models.ApplicationType, status *models.ApplicationStatus) ([]*models.Application, error) {
	args := m.Called(ctx, appType, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateReview(ctx context.Context, appType models.ApplicationType, id uuid.UUID, review models.ApplicationReview) (*models.Application, error) {
	args := m.Called(ctx, appType, id, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, appType models.ApplicationType, id uuid.UUID) error {
	args := m.Called(ctx, appType, id)
	return args.Error(0)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) CreateAdminLog(ctx context.Context, entry *models.AdminAuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) CreateApplicationLog(ctx context.Context, entry *models.ApplicationAuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) ListAdminLogs(ctx context.Context, limit, offset int) ([]*models.AdminAuditLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AdminAuditLog), args.Error(1)
}

func (m *MockAuditLogsRepository) ListApplicationLogs(ctx context.Context, limit, offset int) ([]*models.ApplicationAuditLog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ApplicationAuditLog), args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserDocument, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserDocument), args.Error(1)
}

func (m *MockDocumentRepository) Get(ctx context.Context, userID uuid.UUID, docType models.DocumentType) (*models.UserDocument, error) {
	args := m.Called(ctx, userID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserDocument), args.Error(1)
}

func (m *MockDocumentRepository) CreateMissing(ctx context.Context, userID uuid.UUID, docTypes []models.DocumentType) error {
	args := m.Called(ctx, userID, docTypes)
	return args.Error(0)
}

func (m *MockDocumentRepository) Upsert(ctx context.Context, doc *models.UserDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

type MockAuditLogsService struct {
	mock.Mock
}

func (m *MockAuditLogsService) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetUserID *uuid.UUID, details models.JSONB) error {
	args := m.Called(ctx, adminID, action, targetUserID, details)
	return args.Error(0)
}

func (m *MockAuditLogsService) LogApplicationAction(ctx context.Context, adminID uuid.UUID, appType models.ApplicationType, action string, applicationID *uuid.UUID, details models.JSONB) error {
	args := m.Called(ctx, adminID, appType, action, applicationID, details)
	return args.Error(0)
}

func (m *MockAuditLogsService) ListAdminLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AdminAuditLog, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AdminAuditLog), args.Error(1)
}

func (m *MockAuditLogsService) ListApplicationLogs(ctx context.Context, filters *models.AuditLogFilters) ([]*models.ApplicationAuditLog, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ApplicationAuditLog), args.Error(1)
}

func (m *MockAuditLogsService) ValidateAuditFilters(filters *models.AuditLogFilters) error {
	args := m.Called(filters)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ApplicationReceived(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockNotifier) ApplicationAlert(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockNotifier) AccountCredentials(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fastHasher uses the minimum bcrypt cost to keep tests quick
func fastHasher() *BcryptHasher {
	return &BcryptHasher{Cost: 4}
}

func stringPtr(s string) *string {
	return &s
}

// requireAppError asserts err is an AppError with the given status and code
func requireAppError(t *testing.T, err error, status int, code string) *common.AppError {
	t.Helper()
	appErr, ok := common.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.Status())
	assert.Equal(t, code, appErr.Code)
	return appErr
}
