package service

import (
	"context"
	"log/slog"

	"github.com/taskmgmt/task-management-api/internal/logger"
	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

// ProjectService handles project-related business logic. The caller's
// identity is passed explicitly to every method.
type ProjectService struct {
	projects ProjectStore
	tasks    TaskStore
	tx       TxRunner
}

func NewProjectService(projects ProjectStore, tasks TaskStore, tx TxRunner) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, tx: tx}
}

// Create stamps ownerID as the owner of the new project.
func (s *ProjectService) Create(ctx context.Context, ownerID string, in domain.Project) (*domain.Project, error) {
	if err := validateProject(in); err != nil {
		return nil, err
	}

	p := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("project created", slog.String("project_id", p.ID.String()), slog.String("owner_id", ownerID))
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	id, err := parseID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	return s.projects.FindByIDAndOwner(ctx, id, ownerID)
}

func (s *ProjectService) ListAll(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.projects.ListAll(ctx, ownerID)
}

func (s *ProjectService) ListPage(ctx context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Project], error) {
	return s.projects.ListPage(ctx, ownerID, page)
}

// Update overwrites name and description of the caller's project. Values
// missing from the input are written as empty, there is no partial merge.
func (s *ProjectService) Update(ctx context.Context, ownerID, projectID string, in domain.Project) (*domain.Project, error) {
	id, err := parseID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	if err := validateProject(in); err != nil {
		return nil, err
	}

	var out *domain.Project
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.projects.FindByIDAndOwner(ctx, id, ownerID)
		if err != nil {
			return err
		}
		p.Name = in.Name
		p.Description = in.Description
		if err := s.projects.Update(ctx, ownerID, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the project and all of its tasks in one transaction.
func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID string) error {
	id, err := parseID("projectId", projectID)
	if err != nil {
		return err
	}

	var removed int64
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.projects.FindByIDAndOwner(ctx, id, ownerID); err != nil {
			return err
		}
		n, err := s.tasks.DeleteByProjectAndOwner(ctx, id, ownerID)
		if err != nil {
			return err
		}
		removed = n
		return s.projects.DeleteByIDAndOwner(ctx, id, ownerID)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("project deleted",
		slog.String("project_id", id.String()),
		slog.Int64("tasks_deleted", removed),
	)
	return nil
}
