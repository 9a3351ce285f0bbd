package apperr

import "net/http"

// ErrorCode is the machine-readable identifier returned to clients in the
// errorCode field of an error body.
type ErrorCode string

const (
	// 400
	CodeValidation           ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest       ErrorCode = "INVALID_REQUEST_FORMAT"
	CodeInvalidUUID          ErrorCode = "INVALID_UUID_FORMAT"
	CodeInvalidTaskStatus    ErrorCode = "INVALID_TASK_STATUS"
	CodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"

	// 401
	CodeAuthenticationFailed   ErrorCode = "AUTHENTICATION_FAILED"
	CodeInvalidToken           ErrorCode = "INVALID_TOKEN"
	CodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	CodePasswordChangeRequired ErrorCode = "PASSWORD_CHANGE_REQUIRED"

	// 403
	CodeAccessDenied ErrorCode = "ACCESS_DENIED"

	// 404
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeProjectNotFound  ErrorCode = "PROJECT_NOT_FOUND"
	CodeTaskNotFound     ErrorCode = "TASK_NOT_FOUND"
	CodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"

	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	CodeConflict         ErrorCode = "RESOURCE_CONFLICT"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// 5xx
	CodeInternal        ErrorCode = "INTERNAL_SERVER_ERROR"
	CodeDatabase        ErrorCode = "DATABASE_ERROR"
	CodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var codeInfo = map[ErrorCode]struct {
	description string
	status      int
}{
	CodeValidation:           {"Validation failed", http.StatusBadRequest},
	CodeInvalidRequest:       {"Invalid request format", http.StatusBadRequest},
	CodeInvalidUUID:          {"Invalid UUID format", http.StatusBadRequest},
	CodeInvalidTaskStatus:    {"Invalid task status", http.StatusBadRequest},
	CodeMissingRequiredField: {"Missing required field", http.StatusBadRequest},

	CodeAuthenticationFailed:   {"Authentication failed", http.StatusUnauthorized},
	CodeInvalidToken:           {"Invalid or expired token", http.StatusUnauthorized},
	CodeUnauthorized:           {"Authentication required", http.StatusUnauthorized},
	CodePasswordChangeRequired: {"Password change required", http.StatusUnauthorized},

	CodeAccessDenied: {"Access denied", http.StatusForbidden},

	CodeUserNotFound:     {"User not found", http.StatusNotFound},
	CodeProjectNotFound:  {"Project not found", http.StatusNotFound},
	CodeTaskNotFound:     {"Task not found", http.StatusNotFound},
	CodeResourceNotFound: {"Resource not found", http.StatusNotFound},

	CodeMethodNotAllowed: {"HTTP method not allowed", http.StatusMethodNotAllowed},
	CodeConflict:         {"Resource conflict", http.StatusConflict},
	CodeTooManyRequests:  {"Too many requests", http.StatusTooManyRequests},

	CodeInternal:        {"Internal server error", http.StatusInternalServerError},
	CodeDatabase:        {"Database error occurred", http.StatusInternalServerError},
	CodeExternalService: {"External service error", http.StatusBadGateway},
}

// Description returns the default human-readable message for the code.
func (c ErrorCode) Description() string {
	if info, ok := codeInfo[c]; ok {
		return info.description
	}
	return codeInfo[CodeInternal].description
}

// HTTPStatus returns the status code a response carrying this code uses
// unless the error overrides it.
func (c ErrorCode) HTTPStatus() int {
	if info, ok := codeInfo[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}
