package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"estateportal/internal/common"
	"estateportal/internal/models"
	"estateportal/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type HandlersTestSuite struct {
	suite.Suite
	e         *echo.Echo
	auth      *MockAuthService
	apps      *MockApplicationService
	users     *MockUserService
	docs      *MockDocumentService
	auditRepo *MockAuditLogsRepository
	probes    map[string]Probe
	admin     *models.User
	investor  *models.User
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.auth = &MockAuthService{}
	suite.apps = &MockApplicationService{}
	suite.users = &MockUserService{}
	suite.docs = &MockDocumentService{}
	suite.auditRepo = &MockAuditLogsRepository{}
	suite.probes = map[string]Probe{}

	suite.admin = &models.User{ID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin, Status: models.UserStatusActive}
	suite.investor = &models.User{ID: uuid.New(), Email: "inv@example.com", Name: "Ivy", Role: models.RoleInvestor, Status: models.UserStatusActive}

	suite.auth.On("Authenticate", mock.Anything, "Bearer admin-token").Return(suite.admin, nil).Maybe()
	suite.auth.On("Authenticate", mock.Anything, "Bearer investor-token").Return(suite.investor, nil).Maybe()
	suite.auth.On("Authenticate", mock.Anything, "").
		Return(nil, common.NewAuthenticationError(common.CodeMissingOrInvalidHeader, "Missing or invalid authorization header")).Maybe()

	suite.e = echo.New()
	suite.e.HTTPErrorHandler = NewHTTPErrorHandler(zap.NewNop())
	RegisterRoutes(suite.e, &Handlers{
		Auth:         NewAuthHandlers(suite.auth),
		Applications: NewApplicationHandlers(suite.apps),
		Users:        NewUserHandlers(suite.users, suite.docs),
		Documents:    NewDocumentHandlers(suite.docs),
		AuditLogs:    NewAuditLogsHandlers(services.NewAuditLogsService(suite.auditRepo)),
		Health:       NewHealthHandlers(suite.probes),
	}, suite.auth)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.apps.AssertExpectations(suite.T())
	suite.users.AssertExpectations(suite.T())
	suite.docs.AssertExpectations(suite.T())
	suite.auditRepo.AssertExpectations(suite.T())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *HandlersTestSuite) decodeError(rec *httptest.ResponseRecorder) common.ErrorResponse {
	var resp common.ErrorResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (suite *HandlersTestSuite) decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (suite *HandlersTestSuite) TestLogin_Success() {
	user := &models.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: "$2a$12$hash", Role: models.RoleInvestor, Status: models.UserStatusActive}
	suite.auth.On("Login", mock.Anything, "jane@example.com", "pw").Return(&models.LoginResponse{User: user, Token: "signed"}, nil)

	rec := suite.do(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"pw"}`, "")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := suite.decode(rec)
	assert.Equal(suite.T(), "signed", body["token"])
	userJSON := body["user"].(map[string]interface{})
	assert.Equal(suite.T(), "investor", userJSON["role"])
	assert.NotContains(suite.T(), userJSON, "password_hash")
	assert.NotContains(suite.T(), rec.Body.String(), "$2a$12$hash")
}

func (suite *HandlersTestSuite) TestLogin_InvalidCredentials() {
	suite.auth.On("Login", mock.Anything, "jane@example.com", "bad").
		Return(nil, common.NewAuthenticationError(common.CodeInvalidCredentials, "Invalid email or password"))

	rec := suite.do(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"bad"}`, "")

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	resp := suite.decodeError(rec)
	assert.Equal(suite.T(), common.CodeInvalidCredentials, resp.Error.Code)
	assert.Equal(suite.T(), "Invalid email or password", resp.Error.Message)
}

func (suite *HandlersTestSuite) TestMalformedBody() {
	rec := suite.do(http.MethodPost, "/auth/login", `{"email":`, "")

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), common.CodeValidation, suite.decodeError(rec).Error.Code)
}

func (suite *HandlersTestSuite) TestMe() {
	rec := suite.do(http.MethodGet, "/auth/me", "", "investor-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	user := suite.decode(rec)["user"].(map[string]interface{})
	assert.Equal(suite.T(), suite.investor.ID.String(), user["id"])
}

func (suite *HandlersTestSuite) TestMe_MissingHeader() {
	rec := suite.do(http.MethodGet, "/auth/me", "", "")

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(suite.T(), common.CodeMissingOrInvalidHeader, suite.decodeError(rec).Error.Code)
}

func (suite *HandlersTestSuite) TestSubmitInvestor() {
	appID := uuid.New()
	suite.apps.On("SubmitInvestor", mock.Anything, &models.SubmitInvestorApplicationRequest{
		Email:              "a@b.com",
		FullName:           "A B",
		Phone:              "303-555-0100",
		InvestmentAmount:   "$100k",
		AccreditedInvestor: true,
	}).Return(&models.SubmitApplicationResponse{Success: true, ApplicationID: appID, Message: "ok"}, nil)

	rec := suite.do(http.MethodPost, "/applications",
		`{"email":"a@b.com","full_name":"A B","phone":"303-555-0100","investment_amount":"$100k","accredited_investor":true}`, "")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := suite.decode(rec)
	assert.Equal(suite.T(), true, body["success"])
	assert.Equal(suite.T(), appID.String(), body["application_id"])
}

func (suite *HandlersTestSuite) TestSubmitBuyer_Duplicate() {
	suite.apps.On("SubmitBuyer", mock.Anything, mock.AnythingOfType("*models.SubmitBuyerApplicationRequest")).
		Return(nil, common.NewConflictError(common.CodeDuplicateApplication, "An application with this email is already pending review. We will contact you soon."))

	rec := suite.do(http.MethodPost, "/applications/buyer", `{"email":"a@b.com","full_name":"A B","phone":"1"}`, "")

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), common.CodeDuplicateApplication, suite.decodeError(rec).Error.Code)
}

func (suite *HandlersTestSuite) TestAdminRoutesRequireAdmin() {
	rec := suite.do(http.MethodGet, "/applications/admin", "", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	rec = suite.do(http.MethodGet, "/applications/admin", "", "investor-token")
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), common.CodeInsufficientRole, suite.decodeError(rec).Error.Code)

	rec = suite.do(http.MethodDelete, "/users/"+uuid.NewString(), "", "investor-token")
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

	rec = suite.do(http.MethodGet, "/audit-logs", "", "investor-token")
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
}

func (suite *HandlersTestSuite) TestListApplications() {
	suite.apps.On("List", mock.Anything, "buyer", "pending").Return(nil, nil)

	rec := suite.do(http.MethodGet, "/applications/admin?type=buyer&status=pending", "", "admin-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"applications":[]}`, rec.Body.String())
}

func (suite *HandlersTestSuite) TestReviewApplication() {
	appID := uuid.New()
	approved := "approved"
	suite.apps.On("Review", mock.Anything, suite.admin, &models.ReviewApplicationRequest{
		ApplicationID: appID.String(),
		Status:        &approved,
		CreateUser:    true,
	}).Return(&models.ReviewApplicationResponse{
		Application:  &models.Application{ID: appID, Status: models.ApplicationStatusApproved},
		TempPassword: "Ab3$efGh1!jk",
	}, nil)

	rec := suite.do(http.MethodPatch, "/applications/admin",
		`{"application_id":"`+appID.String()+`","status":"approved","create_user":true}`, "admin-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := suite.decode(rec)
	assert.Equal(suite.T(), "Ab3$efGh1!jk", body["temp_password"])
	assert.Equal(suite.T(), "approved", body["application"].(map[string]interface{})["status"])
}

func (suite *HandlersTestSuite) TestReviewApplication_InternalErrorIsNotLeaked() {
	suite.apps.On("Review", mock.Anything, suite.admin, mock.Anything).
		Return(nil, common.NewDependencyError(common.CodeUserCreationFailed, "Failed to create user account", errors.New("pq: connection refused on 10.0.0.5")))

	rec := suite.do(http.MethodPatch, "/applications/admin", `{"application_id":"x","status":"approved"}`, "admin-token")

	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	resp := suite.decodeError(rec)
	assert.Equal(suite.T(), common.CodeInternal, resp.Error.Code)
	assert.NotContains(suite.T(), rec.Body.String(), "10.0.0.5")
}

func (suite *HandlersTestSuite) TestDeleteApplication() {
	id := uuid.NewString()
	suite.apps.On("Delete", mock.Anything, suite.admin, "buyer", id).Return(nil)

	rec := suite.do(http.MethodDelete, "/applications/admin?id="+id+"&type=buyer", "", "admin-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"success":true}`, rec.Body.String())
}

func (suite *HandlersTestSuite) TestDeleteApplication_NotFound() {
	id := uuid.NewString()
	suite.apps.On("Delete", mock.Anything, suite.admin, "", id).Return(common.NewNotFoundError("Application"))

	rec := suite.do(http.MethodDelete, "/applications/admin?id="+id, "", "admin-token")

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "Application not found", suite.decodeError(rec).Error.Message)
}

func (suite *HandlersTestSuite) TestCreateUser() {
	created := &models.User{ID: uuid.New(), Email: "new@example.com", Name: "New", Role: models.RoleBuyer, Status: models.UserStatusActive}
	suite.users.On("Create", mock.Anything, suite.admin, &models.CreateUserRequest{
		Email: "new@example.com", Name: "New", Role: "buyer", Password: "pw",
	}).Return(created, nil)

	rec := suite.do(http.MethodPost, "/users", `{"email":"new@example.com","name":"New","role":"buyer","password":"pw"}`, "admin-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), created.ID.String(), suite.decode(rec)["user"].(map[string]interface{})["id"])
}

func (suite *HandlersTestSuite) TestUpdateUser_SelfDeactivation() {
	inactive := "inactive"
	suite.users.On("Update", mock.Anything, suite.admin, suite.admin.ID.String(), &models.UpdateUserRequest{Status: &inactive}).
		Return(nil, common.NewValidationError("You cannot deactivate your own account"))

	rec := suite.do(http.MethodPatch, "/users/"+suite.admin.ID.String(), `{"status":"inactive"}`, "admin-token")

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "You cannot deactivate your own account", suite.decodeError(rec).Error.Message)
}

func (suite *HandlersTestSuite) TestListAndDeleteUsers() {
	suite.users.On("List", mock.Anything).Return([]*models.User{suite.admin, suite.investor}, nil)
	suite.users.On("Delete", mock.Anything, suite.admin, suite.investor.ID.String()).Return(nil)

	rec := suite.do(http.MethodGet, "/users", "", "admin-token")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Len(suite.T(), suite.decode(rec)["users"], 2)

	rec = suite.do(http.MethodDelete, "/users/"+suite.investor.ID.String(), "", "admin-token")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *HandlersTestSuite) TestUserDocuments() {
	suite.users.On("Get", mock.Anything, suite.investor.ID.String()).Return(suite.investor, nil)
	suite.docs.On("List", mock.Anything, suite.investor.ID).Return([]*models.UserDocument{
		{ID: uuid.New(), UserID: suite.investor.ID, DocumentType: models.DocumentTypeNDA, Status: models.DocumentStatusPending},
	}, nil)

	rec := suite.do(http.MethodGet, "/users/"+suite.investor.ID.String()+"/documents", "", "admin-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Len(suite.T(), suite.decode(rec)["documents"], 1)
}

func (suite *HandlersTestSuite) TestDocuments_ForCurrentUser() {
	suite.docs.On("List", mock.Anything, suite.investor.ID).Return([]*models.UserDocument{}, nil)
	suite.docs.On("Update", mock.Anything, suite.investor.ID, &models.UpdateDocumentRequest{DocumentType: "nda", Status: "signed", Action: "signed"}).
		Return(&models.UserDocument{UserID: suite.investor.ID, DocumentType: models.DocumentTypeNDA, Status: models.DocumentStatusSigned}, nil)

	rec := suite.do(http.MethodGet, "/documents", "", "investor-token")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.do(http.MethodPatch, "/documents", `{"document_type":"nda","status":"signed","action":"signed"}`, "investor-token")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "signed", suite.decode(rec)["document"].(map[string]interface{})["status"])
}

func (suite *HandlersTestSuite) TestDocumentDownloadURL() {
	suite.docs.On("DownloadURL", mock.Anything, "memorandum").
		Return(&models.DocumentURLResponse{URL: "https://files.example.com/memorandum.pdf", ExpiresIn: 900}, nil)

	rec := suite.do(http.MethodGet, "/documents/memorandum/url", "", "investor-token")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"url":"https://files.example.com/memorandum.pdf","expires_in":900}`, rec.Body.String())
}

func (suite *HandlersTestSuite) TestAuditLogs() {
	suite.auditRepo.On("ListAdminLogs", mock.Anything, 50, 0).Return([]*models.AdminAuditLog{}, nil)
	suite.auditRepo.On("ListApplicationLogs", mock.Anything, 500, 5).Return(nil, nil)

	rec := suite.do(http.MethodGet, "/audit-logs", "", "admin-token")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := suite.decode(rec)
	assert.Equal(suite.T(), "admin", body["kind"])
	assert.Equal(suite.T(), float64(50), body["limit"])

	rec = suite.do(http.MethodGet, "/audit-logs?kind=application&limit=9999&offset=5", "", "admin-token")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body = suite.decode(rec)
	assert.Equal(suite.T(), []interface{}{}, body["entries"])
	assert.Equal(suite.T(), float64(500), body["limit"])
}

func (suite *HandlersTestSuite) TestAuditLogs_BadQuery() {
	rec := suite.do(http.MethodGet, "/audit-logs?limit=ten", "", "admin-token")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = suite.do(http.MethodGet, "/audit-logs?kind=system", "", "admin-token")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestHealth() {
	suite.probes["database"] = func(ctx context.Context) error { return nil }
	suite.probes["storage"] = func(ctx context.Context) error { return nil }

	rec := suite.do(http.MethodGet, "/health", "", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "healthy", suite.decode(rec)["status"])

	suite.probes["redis"] = func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(suite.T(), ok)
		return errors.New("dial tcp: connection refused")
	}
	rec = suite.do(http.MethodGet, "/health", "", "")
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
	body := suite.decode(rec)
	assert.Equal(suite.T(), "degraded", body["status"])
	assert.Equal(suite.T(), map[string]interface{}{
		"database": "healthy",
		"storage":  "healthy",
		"redis":    "unhealthy",
	}, body["services"])
}

func (suite *HandlersTestSuite) TestUnknownRoute() {
	rec := suite.do(http.MethodGet, "/nope", "", "")

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "NotFound", suite.decodeError(rec).Error.Code)
}

func TestErrorBody(t *testing.T) {
	status, body := errorBody(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, common.CodeInternal, body.Error.Code)

	status, body = errorBody(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "MethodNotAllowed", body.Error.Code)

	status, body = errorBody(common.NewValidationError("Invalid status"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status", body.Error.Message)
}

func TestHealthUptime(t *testing.T) {
	h := NewHealthHandlers(nil)
	h.started = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return h.started.Add(90*time.Second + 300*time.Millisecond) }

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	require.NoError(t, h.HealthCheck(c))
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "1m30s", status.Uptime)
	assert.Equal(t, "healthy", status.Status)
}
