package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
	"github.com/taskmgmt/task-management-api/internal/storage/postgres"
)

// TaskRepository persists tasks. Ownership is resolved through the owning
// project on every statement.
type TaskRepository struct {
	db postgres.DBTX
}

func NewTaskRepository(db postgres.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts t under t.ProjectID if that project belongs to ownerID.
func (r *TaskRepository) Create(ctx context.Context, ownerID string, t *domain.Task) error {
	const q = `
INSERT INTO tasks (name, description, status, project_id)
SELECT $1, $2, $3, p.id
FROM projects p
WHERE p.id = $4 AND p.owner_id = $5
RETURNING id::text, created_at, updated_at;
`
	var id string
	err := postgres.Executor(ctx, r.db).
		QueryRow(ctx, q, t.Name, t.Description, string(t.Status), t.ProjectID.String(), ownerID).
		Scan(&id, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return dbError("insert task", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return dbError("insert task", err)
	}
	t.ID = parsed
	return nil
}

func (r *TaskRepository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Task, error) {
	const q = `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE t.id = $1 AND p.owner_id = $2;
`
	t, err := scanTask(postgres.Executor(ctx, r.db).QueryRow(ctx, q, id.String(), ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, dbError("select task", err)
	}
	return &t, nil
}

func (r *TaskRepository) ListAllByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const q = `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE p.owner_id = $1
ORDER BY t.created_at DESC, t.id;
`
	return r.list(ctx, q, ownerID)
}

func (r *TaskRepository) ListPageByOwner(ctx context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Task], error) {
	const countQ = `
SELECT count(*)
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE p.owner_id = $1;
`
	const q = `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE p.owner_id = $1
ORDER BY t.created_at DESC, t.id
LIMIT $2 OFFSET $3;
`
	return r.page(ctx, page, countQ, q, ownerID)
}

func (r *TaskRepository) ListAllByProjectAndOwner(ctx context.Context, projectID uuid.UUID, ownerID string) ([]domain.Task, error) {
	const q = `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE t.project_id = $1 AND p.owner_id = $2
ORDER BY t.created_at DESC, t.id;
`
	return r.list(ctx, q, projectID.String(), ownerID)
}

func (r *TaskRepository) ListPageByProjectAndOwner(ctx context.Context, projectID uuid.UUID, ownerID string, page pagination.Request) (pagination.Page[domain.Task], error) {
	const countQ = `
SELECT count(*)
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE t.project_id = $1 AND p.owner_id = $2;
`
	const q = `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE t.project_id = $1 AND p.owner_id = $2
ORDER BY t.created_at DESC, t.id
LIMIT $3 OFFSET $4;
`
	return r.page(ctx, page, countQ, q, projectID.String(), ownerID)
}

// Update overwrites name, description and status. Project and created_at
// are never touched.
func (r *TaskRepository) Update(ctx context.Context, ownerID string, t *domain.Task) error {
	const q = `
UPDATE tasks t
SET name = $3, description = $4, status = $5, updated_at = now()
FROM projects p
WHERE t.id = $1 AND p.id = t.project_id AND p.owner_id = $2
RETURNING t.updated_at;
`
	err := postgres.Executor(ctx, r.db).
		QueryRow(ctx, q, t.ID.String(), ownerID, t.Name, t.Description, string(t.Status)).
		Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return dbError("update task", err)
	}
	return nil
}

func (r *TaskRepository) DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) error {
	const q = `
DELETE FROM tasks t
USING projects p
WHERE t.id = $1 AND p.id = t.project_id AND p.owner_id = $2;
`
	tag, err := postgres.Executor(ctx, r.db).Exec(ctx, q, id.String(), ownerID)
	if err != nil {
		return dbError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteByProjectAndOwner removes every task of the project and reports how
// many were deleted.
func (r *TaskRepository) DeleteByProjectAndOwner(ctx context.Context, projectID uuid.UUID, ownerID string) (int64, error) {
	const q = `
DELETE FROM tasks t
USING projects p
WHERE t.project_id = $1 AND p.id = t.project_id AND p.owner_id = $2;
`
	tag, err := postgres.Executor(ctx, r.db).Exec(ctx, q, projectID.String(), ownerID)
	if err != nil {
		return 0, dbError("delete project tasks", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) list(ctx context.Context, q string, args ...any) ([]domain.Task, error) {
	rows, err := postgres.Executor(ctx, r.db).Query(ctx, q, args...)
	if err != nil {
		return nil, dbError("select tasks", err)
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, dbError("scan tasks", err)
	}
	return tasks, nil
}

func (r *TaskRepository) page(ctx context.Context, page pagination.Request, countQ, q string, args ...any) (pagination.Page[domain.Task], error) {
	var total int64
	if err := postgres.Executor(ctx, r.db).QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return pagination.Page[domain.Task]{}, dbError("count tasks", err)
	}

	items, err := r.list(ctx, q, append(args, page.Size, page.Offset())...)
	if err != nil {
		return pagination.Page[domain.Task]{}, err
	}
	return pagination.New(items, page, total), nil
}
