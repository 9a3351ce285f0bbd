package apperr

import (
	"errors"
	"fmt"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the error type every layer returns when the failure has a
// meaning for the client. Err carries the internal cause for logging only.
type AppError struct {
	Code        ErrorCode
	Message     string
	Status      int
	FieldErrors []FieldError
	Err         error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus returns the explicit status override or the code's default.
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Code.HTTPStatus()
}

// New creates an AppError. An empty message falls back to the code description.
func New(code ErrorCode, message string, err error) *AppError {
	if message == "" {
		message = code.Description()
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// WithStatus overrides the HTTP status of the error.
func (e *AppError) WithStatus(status int) *AppError {
	e.Status = status
	return e
}

func Validation(fields []FieldError) *AppError {
	return &AppError{Code: CodeValidation, Message: "Validation failed", FieldErrors: fields}
}

func InvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, message, nil)
}

func InvalidUUID(field, value string) *AppError {
	return New(CodeInvalidUUID, fmt.Sprintf("Invalid %s format: %s", field, value), nil)
}

func NotFound(code ErrorCode, message string) *AppError {
	return New(code, message, nil)
}

func AuthenticationFailed(message string) *AppError {
	return New(CodeAuthenticationFailed, message, nil)
}

func PasswordChangeRequired() *AppError {
	return New(CodePasswordChangeRequired, "Password change required. Use the force-password-change endpoint", nil)
}

func InvalidToken(message string) *AppError {
	return New(CodeInvalidToken, message, nil)
}

func AccessDenied(message string) *AppError {
	return New(CodeAccessDenied, message, nil)
}

func Conflict(message string, err error) *AppError {
	return New(CodeConflict, message, err)
}

func External(message string, status int, err error) *AppError {
	return New(CodeExternalService, message, err).WithStatus(status)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, err)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
