package http

import (
	"context"

	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

// ProjectService is satisfied by *service.ProjectService.
type ProjectService interface {
	Create(ctx context.Context, ownerID string, in domain.Project) (*domain.Project, error)
	Get(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
	ListAll(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListPage(ctx context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Project], error)
	Update(ctx context.Context, ownerID, projectID string, in domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, projectID string) error
}

// TaskService is satisfied by *service.TaskService.
type TaskService interface {
	Create(ctx context.Context, ownerID, projectID string, in domain.Task) (*domain.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	ListAll(ctx context.Context, ownerID, projectID string) ([]domain.Task, error)
	ListPage(ctx context.Context, ownerID, projectID string, page pagination.Request) (pagination.Page[domain.Task], error)
	Update(ctx context.Context, ownerID, taskID string, in domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}

// Handler bundles the dependencies for project and task endpoints.
type Handler struct {
	projects ProjectService
	tasks    TaskService
}

func New(projects ProjectService, tasks TaskService) *Handler {
	return &Handler{projects: projects, tasks: tasks}
}
