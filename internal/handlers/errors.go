package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"estateportal/internal/common"
	"estateportal/internal/middleware"
	"estateportal/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "An internal error occurred"

// NewHTTPErrorHandler renders every handler error as a common.ErrorResponse.
// AppErrors keep their status and code, echo errors keep their status, and
// anything else becomes a 500 whose cause is only logged.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorBody(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
	}
}

func errorBody(err error) (int, *common.ErrorResponse) {
	if appErr, ok := common.AsAppError(err); ok {
		status := appErr.Status()
		if status >= http.StatusInternalServerError {
			return status, common.CreateErrorResponse(common.CodeInternal, internalErrorMessage, nil)
		}
		return status, common.CreateErrorResponse(appErr.Code, appErr.Message, nil)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, common.CreateErrorResponse(common.CodeInternal, internalErrorMessage, nil)
		}
		return he.Code, common.CreateErrorResponse(statusCode(he.Code), fmt.Sprint(he.Message), nil)
	}

	return http.StatusInternalServerError, common.CreateErrorResponse(common.CodeInternal, internalErrorMessage, nil)
}

// statusCode turns an HTTP status into an error code, e.g. 405 -> MethodNotAllowed
func statusCode(status int) string {
	return strings.ReplaceAll(http.StatusText(status), " ", "")
}

func invalidBody() error {
	return common.NewValidationError("Invalid request body")
}

func currentUser(c echo.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, common.NewAuthenticationError(common.CodeMissingOrInvalidHeader, "Missing or invalid authorization header")
	}
	return user, nil
}
