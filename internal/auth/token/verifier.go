package token

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	"github.com/taskmgmt/task-management-api/config"
	"github.com/taskmgmt/task-management-api/internal/apperr"
)

// Claims are the Cognito ID token claims the API relies on.
type Claims struct {
	TokenUse string   `json:"token_use"`
	Username string   `json:"cognito:username"`
	Email    string   `json:"email"`
	Groups   []string `json:"cognito:groups"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens: signature, expiry, issuer, audience and
// token_use.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
	methods  []string
	close    func()
}

// NewVerifier uses keyfunc to resolve signing keys. methods defaults to RS256.
func NewVerifier(kf jwt.Keyfunc, issuer, audience string, methods ...string) *Verifier {
	if len(methods) == 0 {
		methods = []string{jwt.SigningMethodRS256.Alg()}
	}
	return &Verifier{keyfunc: kf, issuer: issuer, audience: audience, methods: methods, close: func() {}}
}

// NewJWKSVerifier fetches the user pool JWKS and keeps it refreshed in the
// background until Close is called.
func NewJWKSVerifier(cfg config.CognitoConfig) (*Verifier, error) {
	if cfg.JWKSURL == "" {
		return nil, errors.New("jwks url is not configured")
	}
	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			slog.Error("jwks refresh failed", slog.String("url", cfg.JWKSURL), slog.Any("error", err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}

	v := NewVerifier(jwks.Keyfunc, cfg.Issuer(), cfg.ClientID)
	v.close = jwks.EndBackground
	return v, nil
}

func (v *Verifier) Close() {
	v.close()
}

func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods(v.methods))

	tok, err := parser.ParseWithClaims(raw, claims, v.keyfunc)
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, apperr.New(apperr.CodeInvalidToken, "Token has expired", err)
		}
		return nil, apperr.New(apperr.CodeInvalidToken, "Invalid token", err)
	}
	if !tok.Valid {
		return nil, apperr.InvalidToken("Invalid token")
	}

	if !claims.VerifyIssuer(v.issuer, true) {
		return nil, apperr.InvalidToken("Invalid token issuer")
	}
	if !claims.VerifyAudience(v.audience, true) {
		return nil, apperr.InvalidToken("Invalid token audience")
	}
	if claims.TokenUse != "id" {
		return nil, apperr.InvalidToken("Token is not an ID token")
	}
	if claims.Subject == "" {
		return nil, apperr.InvalidToken("Token has no subject")
	}
	return claims, nil
}

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Roles maps group membership to authorities: every caller is ROLE_USER and
// each group g adds ROLE_<G>.
func Roles(groups []string) []string {
	roles := []string{RoleUser}
	seen := map[string]bool{RoleUser: true}
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		r := "ROLE_" + strings.ToUpper(g)
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	return roles
}
