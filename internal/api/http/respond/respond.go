// Package respond writes JSON success and error bodies for gin handlers.
package respond

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/logger"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message     string              `json:"message"`
	ErrorCode   apperr.ErrorCode    `json:"errorCode"`
	Timestamp   int64               `json:"timestamp"`
	Path        string              `json:"path"`
	FieldErrors []apperr.FieldError `json:"fieldErrors,omitempty"`
}

// MessageBody is returned by endpoints that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

// Message writes 200 with a confirmation message.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageBody{Message: msg})
}

// Error translates err into an ErrorBody and logs it. Errors that are not an
// *apperr.AppError are reported as a generic internal error.
func Error(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal("An unexpected error occurred", err)
	}
	status := appErr.HTTPStatus()

	log := logger.FromContext(c.Request.Context()).With(
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error_code", string(appErr.Code)),
		slog.Int("status", status),
	)
	if status >= http.StatusInternalServerError {
		log.Error(appErr.Message, slog.Any("error", err))
	} else {
		log.Warn(appErr.Message)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{
		Message:     appErr.Message,
		ErrorCode:   appErr.Code,
		Timestamp:   time.Now().UnixMilli(),
		Path:        c.Request.URL.Path,
		FieldErrors: appErr.FieldErrors,
	})
}

// BindJSON decodes the request body into dst. Malformed or empty bodies
// become INVALID_REQUEST_FORMAT.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.InvalidRequest("Request body is required")
		}
		return apperr.New(apperr.CodeInvalidRequest, "Malformed JSON request body", err)
	}
	return nil
}

func NoRoute(c *gin.Context) {
	Error(c, apperr.NotFound(apperr.CodeResourceNotFound, "No handler found for "+c.Request.Method+" "+c.Request.URL.Path))
}

func NoMethod(c *gin.Context) {
	Error(c, apperr.New(apperr.CodeMethodNotAllowed, "Request method '"+c.Request.Method+"' is not supported", nil))
}
