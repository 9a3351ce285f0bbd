package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/api/http/respond"
	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/auth"
)

// RoutePolicy is satisfied by *authz.Authorizer.
type RoutePolicy interface {
	Allowed(roles []string, path, method string) (bool, error)
}

// Authorize checks the principal's roles against the route policy. It must
// run after BearerAuth.
func Authorize(policy RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.CurrentPrincipal(c)
		if !ok {
			respond.Error(c, apperr.New(apperr.CodeUnauthorized, "Authentication required", nil))
			return
		}

		allowed, err := policy.Allowed(p.Roles, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			respond.Error(c, apperr.Internal("Authorization check failed", err))
			return
		}
		if !allowed {
			respond.Error(c, apperr.AccessDenied("Access denied"))
			return
		}
		c.Next()
	}
}
