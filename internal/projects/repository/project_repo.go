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

// ProjectRepository persists projects. Every lookup and mutation is scoped
// by owner; a project owned by someone else behaves as if it did not exist.
type ProjectRepository struct {
	db postgres.DBTX
}

func NewProjectRepository(db postgres.DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts p and fills in its id and timestamps.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (name, description, owner_id)
VALUES ($1, $2, $3)
RETURNING id::text, created_at, updated_at;
`
	var id string
	err := postgres.Executor(ctx, r.db).QueryRow(ctx, q, p.Name, p.Description, p.OwnerID).
		Scan(&id, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return dbError("insert project", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return dbError("insert project", err)
	}
	p.ID = parsed
	p.Tasks = []domain.Task{}
	return nil
}

// FindByIDAndOwner loads the project with its tasks.
func (r *ProjectRepository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects p
WHERE p.id = $1 AND p.owner_id = $2;
`
	p, err := scanProject(postgres.Executor(ctx, r.db).QueryRow(ctx, q, id.String(), ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, dbError("select project", err)
	}

	projects := []domain.Project{p}
	if err := r.attachTasks(ctx, projects); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

// ListAll returns every project of the owner, newest first, with tasks.
func (r *ProjectRepository) ListAll(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects p
WHERE p.owner_id = $1
ORDER BY p.created_at DESC, p.id;
`
	return r.list(ctx, q, ownerID)
}

// ListPage returns one page of the owner's projects, newest first, with tasks.
func (r *ProjectRepository) ListPage(ctx context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Project], error) {
	const countQ = `SELECT count(*) FROM projects WHERE owner_id = $1;`
	const q = `
SELECT ` + projectColumns + `
FROM projects p
WHERE p.owner_id = $1
ORDER BY p.created_at DESC, p.id
LIMIT $2 OFFSET $3;
`
	var total int64
	if err := postgres.Executor(ctx, r.db).QueryRow(ctx, countQ, ownerID).Scan(&total); err != nil {
		return pagination.Page[domain.Project]{}, dbError("count projects", err)
	}

	items, err := r.list(ctx, q, ownerID, page.Size, page.Offset())
	if err != nil {
		return pagination.Page[domain.Project]{}, err
	}
	return pagination.New(items, page, total), nil
}

// Update overwrites name and description and refreshes updated_at.
func (r *ProjectRepository) Update(ctx context.Context, ownerID string, p *domain.Project) error {
	const q = `
UPDATE projects
SET name = $3, description = $4, updated_at = now()
WHERE id = $1 AND owner_id = $2
RETURNING updated_at;
`
	err := postgres.Executor(ctx, r.db).QueryRow(ctx, q, p.ID.String(), ownerID, p.Name, p.Description).
		Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProjectNotFound
		}
		return dbError("update project", err)
	}
	return nil
}

func (r *ProjectRepository) DeleteByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) error {
	const q = `DELETE FROM projects WHERE id = $1 AND owner_id = $2;`

	tag, err := postgres.Executor(ctx, r.db).Exec(ctx, q, id.String(), ownerID)
	if err != nil {
		return dbError("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) list(ctx context.Context, q string, args ...any) ([]domain.Project, error) {
	rows, err := postgres.Executor(ctx, r.db).Query(ctx, q, args...)
	if err != nil {
		return nil, dbError("select projects", err)
	}

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, dbError("scan project", err)
		}
		out = append(out, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, dbError("select projects", err)
	}

	if err := r.attachTasks(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachTasks loads the tasks of all given projects in one query.
func (r *ProjectRepository) attachTasks(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}
	const q = `
SELECT ` + taskColumns + `
FROM tasks t
JOIN projects p ON p.id = t.project_id
WHERE t.project_id = ANY($1::uuid[])
ORDER BY t.created_at DESC, t.id;
`
	ids := make([]uuid.UUID, len(projects))
	index := make(map[uuid.UUID]int, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := postgres.Executor(ctx, r.db).Query(ctx, q, idStrings(ids))
	if err != nil {
		return dbError("select project tasks", err)
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return dbError("scan project tasks", err)
	}

	for _, t := range tasks {
		if i, ok := index[t.ProjectID]; ok {
			projects[i].Tasks = append(projects[i].Tasks, t)
		}
	}
	return nil
}
