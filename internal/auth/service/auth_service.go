package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/auth"
	"github.com/taskmgmt/task-management-api/internal/auth/revocation"
	"github.com/taskmgmt/task-management-api/internal/logger"
)

// IdentityProvider is satisfied by *cognito.Client.
type IdentityProvider interface {
	SignIn(ctx context.Context, username, password string) (string, error)
	ForcePasswordChange(ctx context.Context, username, password, newPassword string) (string, error)
	GlobalSignOut(ctx context.Context, username string) error
}

// Credentials identify the account by email or username; email wins when
// both are present.
type Credentials struct {
	Username    string
	Email       string
	Password    string
	NewPassword string
}

func (c Credentials) LoginIdentifier() string {
	if e := strings.TrimSpace(c.Email); e != "" {
		return e
	}
	return strings.TrimSpace(c.Username)
}

type AuthService struct {
	idp     IdentityProvider
	revoked revocation.Store
	now     func() time.Time
}

func NewAuthService(idp IdentityProvider, revoked revocation.Store) *AuthService {
	return &AuthService{idp: idp, revoked: revoked, now: time.Now}
}

func (s *AuthService) SignIn(ctx context.Context, creds Credentials) (string, error) {
	if err := validateCredentials(creds, false); err != nil {
		return "", err
	}
	token, err := s.idp.SignIn(ctx, creds.LoginIdentifier(), creds.Password)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info("user signed in", slog.String("login", creds.LoginIdentifier()))
	return token, nil
}

func (s *AuthService) ForcePasswordChange(ctx context.Context, creds Credentials) (string, error) {
	if err := validateCredentials(creds, true); err != nil {
		return "", err
	}
	token, err := s.idp.ForcePasswordChange(ctx, creds.LoginIdentifier(), creds.Password, creds.NewPassword)
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info("password changed", slog.String("login", creds.LoginIdentifier()))
	return token, nil
}

// Logout signs the caller out at the identity provider and rejects every
// token issued up to now.
func (s *AuthService) Logout(ctx context.Context, p *auth.Principal) error {
	username := p.Username
	if username == "" {
		username = p.Subject
	}
	if err := s.idp.GlobalSignOut(ctx, username); err != nil {
		return err
	}
	if err := s.revoked.Revoke(ctx, p.Subject, s.now()); err != nil {
		return apperr.Internal("Failed to revoke session", err)
	}
	logger.FromContext(ctx).Info("user logged out", slog.String("sub", p.Subject))
	return nil
}

func validateCredentials(c Credentials, needNewPassword bool) error {
	var errs []apperr.FieldError
	if c.LoginIdentifier() == "" {
		errs = append(errs, apperr.FieldError{Field: "usernameOrEmail", Message: "Either username or email is required"})
	}
	if strings.TrimSpace(c.Password) == "" {
		errs = append(errs, apperr.FieldError{Field: "password", Message: "Password is required"})
	}
	if needNewPassword && strings.TrimSpace(c.NewPassword) == "" {
		errs = append(errs, apperr.FieldError{Field: "newPassword", Message: "New password is required"})
	}
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}
