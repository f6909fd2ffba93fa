package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an AppError and decides its HTTP status
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindDependency
)

// Error codes surfaced to clients
const (
	CodeValidation             = "ValidationError"
	CodeMissingOrInvalidHeader = "MissingOrInvalidHeader"
	CodeInvalidToken           = "InvalidToken"
	CodeUserNotFound           = "UserNotFound"
	CodeInvalidCredentials     = "InvalidCredentials"
	CodeInsufficientRole       = "InsufficientRole"
	CodeNotFound               = "NotFound"
	CodeDuplicateApplication   = "DuplicateApplication"
	CodeEmailAlreadyExists     = "EmailAlreadyExists"
	CodeUserCreationFailed     = "UserCreationFailed"
	CodeInternal               = "InternalServerError"
)

// AppError is the error type every service returns for expected failures.
// Message is safe to show to clients; Err is for logs only.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Status maps the error kind onto an HTTP status code
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeValidation, Message: message}
}

func NewAuthenticationError(code, message string) *AppError {
	return &AppError{Kind: KindAuthentication, Code: code, Message: message}
}

func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Code: CodeInsufficientRole, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewConflictError(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func NewDependencyError(code, message string, err error) *AppError {
	return &AppError{Kind: KindDependency, Code: code, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError when it is one
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}
