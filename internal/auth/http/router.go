package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the credential exchange routes. The group is
// expected to be rate limited but not authenticated.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/signin", h.SignIn)
	rg.POST("/force-password-change", h.ForcePasswordChange)
}

// RegisterProtected attaches routes that need an authenticated caller.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
}
