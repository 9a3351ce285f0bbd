package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/api/http/respond"
	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/auth"
)

// SignIn exchanges credentials for an ID token.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := respond.BindJSON(c, &req); err != nil {
		respond.Error(c, err)
		return
	}

	token, err := h.authService.SignIn(c.Request.Context(), req.credentials())
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, signInResponse{Token: token})
}

// ForcePasswordChange completes the first-login password change.
func (h *Handler) ForcePasswordChange(c *gin.Context) {
	var req signInRequest
	if err := respond.BindJSON(c, &req); err != nil {
		respond.Error(c, err)
		return
	}

	token, err := h.authService.ForcePasswordChange(c.Request.Context(), req.credentials())
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, signInResponse{Token: token})
}

func (h *Handler) Logout(c *gin.Context) {
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		respond.Error(c, apperr.New(apperr.CodeUnauthorized, "Authentication required", nil))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), p); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, "Logged out successfully")
}
