package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/api/http/respond"
	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/auth"
	"github.com/taskmgmt/task-management-api/internal/auth/revocation"
	"github.com/taskmgmt/task-management-api/internal/auth/token"
	"github.com/taskmgmt/task-management-api/internal/logger"
)

// TokenVerifier is satisfied by *token.Verifier.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// BearerAuth validates the ID token in the Authorization header, rejects
// tokens issued before the subject's last logout and stores the principal.
func BearerAuth(verifier TokenVerifier, revoked revocation.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			respond.Error(c, apperr.New(apperr.CodeUnauthorized, "Missing authorization token", nil))
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			respond.Error(c, err)
			return
		}

		p := &auth.Principal{
			Subject:  claims.Subject,
			Username: claims.Username,
			Email:    claims.Email,
			Groups:   claims.Groups,
			Roles:    token.Roles(claims.Groups),
		}
		if claims.IssuedAt != nil {
			p.IssuedAt = claims.IssuedAt.Time
		}

		isRevoked, err := revocation.IsRevoked(c.Request.Context(), revoked, p.Subject, p.IssuedAt)
		if err != nil {
			// Redis outages do not lock every user out.
			logger.FromContext(c.Request.Context()).Warn("revocation lookup failed", slog.Any("error", err))
		} else if isRevoked {
			respond.Error(c, apperr.InvalidToken("Token has been revoked"))
			return
		}

		auth.SetPrincipal(c, p)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
