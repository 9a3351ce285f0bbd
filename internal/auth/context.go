package auth

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CtxPrincipal = "auth_principal"
	CtxSubject   = "auth_sub"
)

// Principal is the authenticated caller derived from a verified ID token.
type Principal struct {
	Subject  string
	Username string
	Email    string
	Groups   []string
	Roles    []string
	IssuedAt time.Time
}

func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// SetPrincipal stores p in the Gin context. Called by BearerAuth.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(CtxPrincipal, p)
	c.Set(CtxSubject, p.Subject)
}

func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok && p != nil
}

// UserSubject returns the caller's identity subject, or "" when the request
// was not authenticated.
func UserSubject(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxSubject))
}
