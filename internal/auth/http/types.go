package http

import (
	"github.com/taskmgmt/task-management-api/internal/auth/service"
)

// Handler serves the /api/auth endpoints.
type Handler struct {
	authService *service.AuthService
}

func New(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

type signInRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func (r signInRequest) credentials() service.Credentials {
	return service.Credentials{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		NewPassword: r.NewPassword,
	}
}

type signInResponse struct {
	Token string `json:"token"`
}
