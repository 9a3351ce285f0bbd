package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Project, error)
	ListAll(ctx context.Context, ownerID string) ([]domain.Project, error)
	ListPage(ctx context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Project], error)
	Update(ctx context.Context, ownerID string, p *domain.Project) error
	DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) error
}

type TaskStore interface {
	Create(ctx context.Context, ownerID string, t *domain.Task) error
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Task, error)
	ListAllByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	ListPageByOwner(ctx context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Task], error)
	ListAllByProjectAndOwner(ctx context.Context, projectID uuid.UUID, ownerID string) ([]domain.Task, error)
	ListPageByProjectAndOwner(ctx context.Context, projectID uuid.UUID, ownerID string, page pagination.Request) (pagination.Page[domain.Task], error)
	Update(ctx context.Context, ownerID string, t *domain.Task) error
	DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) error
	DeleteByProjectAndOwner(ctx context.Context, projectID uuid.UUID, ownerID string) (int64, error)
}

// TxRunner runs fn inside a transaction bound to the context it receives.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
