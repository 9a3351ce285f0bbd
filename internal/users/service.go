// Package users exposes identity-provider accounts to administrators.
package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/auth/cognito"
	"github.com/taskmgmt/task-management-api/internal/logger"
)

// Directory is satisfied by *cognito.Client.
type Directory interface {
	ListUsers(ctx context.Context) ([]cognito.User, error)
	GetUserBySub(ctx context.Context, sub string) (*cognito.User, error)
	DeleteUser(ctx context.Context, sub string) error
}

type Service struct {
	dir Directory
}

func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

func (s *Service) List(ctx context.Context) ([]cognito.User, error) {
	return s.dir.ListUsers(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*cognito.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.CodeMissingRequiredField, "User id is required", nil)
	}
	return s.dir.GetUserBySub(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.New(apperr.CodeMissingRequiredField, "User id is required", nil)
	}
	if err := s.dir.DeleteUser(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("user deleted", slog.String("sub", id))
	return nil
}
