package handlers

import (
	"context"

	"estateportal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, authorization string) (*models.User, error) {
	args := m.Called(ctx, authorization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) SubmitInvestor(ctx context.Context, req *models.SubmitInvestorApplicationRequest) (*models.SubmitApplicationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitApplicationResponse), args.Error(1)
}

func (m *MockApplicationService) SubmitBuyer(ctx context.Context, req *models.SubmitBuyerApplicationRequest) (*models.SubmitApplicationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitApplicationResponse), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, appType, status string) ([]*models.Application, error) {
	args := m.Called(ctx, appType, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Application), args.Error(1)
}

func (m *MockApplicationService) Review(ctx context.Context, admin *models.User, req *models.ReviewApplicationRequest) (*models.ReviewApplicationResponse, error) {
	args := m.Called(ctx, admin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewApplicationResponse), args.Error(1)
}

func (m *MockApplicationService) Delete(ctx context.Context, admin *models.User, appType, id string) error {
	args := m.Called(ctx, admin, appType, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, admin *models.User, req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, admin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, admin *models.User, id string, req *models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, admin, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, admin *models.User, id string) error {
	args := m.Called(ctx, admin, id)
	return args.Error(0)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) List(ctx context.Context, userID uuid.UUID) ([]*models.UserDocument, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserDocument), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, userID uuid.UUID, req *models.UpdateDocumentRequest) (*models.UserDocument, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserDocument), args.Error(1)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, docType string) (*models.DocumentURLResponse, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentURLResponse), args.Error(1)
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
