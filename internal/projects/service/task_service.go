package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskmgmt/task-management-api/internal/logger"
	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

// TaskService handles task business logic. A task is reachable only through
// a project owned by the caller.
type TaskService struct {
	projects ProjectStore
	tasks    TaskStore
	tx       TxRunner
}

func NewTaskService(projects ProjectStore, tasks TaskStore, tx TxRunner) *TaskService {
	return &TaskService{projects: projects, tasks: tasks, tx: tx}
}

// Create attaches a new task to projectID after checking the project belongs
// to ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID, projectID string, in domain.Task) (*domain.Task, error) {
	pid, err := parseID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.TaskStatusTodo
	}
	if err := validateTask(in); err != nil {
		return nil, err
	}

	t := &domain.Task{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		ProjectID:   pid,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.projects.FindByIDAndOwner(ctx, pid, ownerID)
		if err != nil {
			return err
		}
		t.ProjectName = p.Name
		return s.tasks.Create(ctx, ownerID, t)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("task created",
		slog.String("task_id", t.ID.String()),
		slog.String("project_id", pid.String()),
	)
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	id, err := parseID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	return s.tasks.FindByIDAndOwner(ctx, id, ownerID)
}

// ListAll returns all of the caller's tasks, or only those of projectID
// when it is set.
func (s *TaskService) ListAll(ctx context.Context, ownerID, projectID string) ([]domain.Task, error) {
	if strings.TrimSpace(projectID) == "" {
		return s.tasks.ListAllByOwner(ctx, ownerID)
	}

	pid, err := parseID("projectId", projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByIDAndOwner(ctx, pid, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.ListAllByProjectAndOwner(ctx, pid, ownerID)
}

func (s *TaskService) ListPage(ctx context.Context, ownerID, projectID string, page pagination.Request) (pagination.Page[domain.Task], error) {
	if strings.TrimSpace(projectID) == "" {
		return s.tasks.ListPageByOwner(ctx, ownerID, page)
	}

	pid, err := parseID("projectId", projectID)
	if err != nil {
		return pagination.Page[domain.Task]{}, err
	}
	if _, err := s.projects.FindByIDAndOwner(ctx, pid, ownerID); err != nil {
		return pagination.Page[domain.Task]{}, err
	}
	return s.tasks.ListPageByProjectAndOwner(ctx, pid, ownerID, page)
}

// Update overwrites name, description and status. The owning project is
// never changed.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, in domain.Task) (*domain.Task, error) {
	id, err := parseID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.TaskStatusTodo
	}
	if err := validateTask(in); err != nil {
		return nil, err
	}

	var out *domain.Task
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.tasks.FindByIDAndOwner(ctx, id, ownerID)
		if err != nil {
			return err
		}
		t.Name = in.Name
		t.Description = in.Description
		t.Status = in.Status
		if err := s.tasks.Update(ctx, ownerID, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	id, err := parseID("taskId", taskID)
	if err != nil {
		return err
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.tasks.FindByIDAndOwner(ctx, id, ownerID); err != nil {
			return err
		}
		return s.tasks.DeleteByIDAndOwner(ctx, id, ownerID)
	})
}
