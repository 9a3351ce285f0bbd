package cognito

import (
	"errors"
	"net/http"

	"github.com/aws/smithy-go"

	"github.com/taskmgmt/task-management-api/internal/apperr"
)

// mapError converts SDK errors into AppErrors. Bad credentials and unknown
// users look the same to the caller.
func mapError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return apperr.External("Identity provider is unavailable", http.StatusBadGateway, err)
	}

	switch apiErr.ErrorCode() {
	case "NotAuthorizedException", "UserNotFoundException":
		return apperr.New(apperr.CodeAuthenticationFailed, "Invalid username or password", err)
	case "PasswordResetRequiredException":
		return apperr.New(apperr.CodePasswordChangeRequired, "Password reset required", err)
	case "TooManyRequestsException", "LimitExceededException":
		return apperr.New(apperr.CodeTooManyRequests, "Too many requests to identity provider", err)
	}

	if apiErr.ErrorFault() == smithy.FaultServer {
		return apperr.External("Identity provider error", http.StatusBadGateway, err)
	}
	msg := apiErr.ErrorMessage()
	if msg == "" {
		msg = "Identity provider rejected the request"
	}
	return apperr.External(msg, http.StatusUnauthorized, err)
}
