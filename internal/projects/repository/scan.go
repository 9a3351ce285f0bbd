package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
	"github.com/taskmgmt/task-management-api/internal/storage/postgres"
)

type scanner interface {
	Scan(dest ...any) error
}

const projectColumns = `p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at`

const taskColumns = `t.id, t.name, t.description, t.status, t.project_id, p.name, t.created_at, t.updated_at`

func scanProject(row scanner) (domain.Project, error) {
	var (
		p  domain.Project
		id string
	)
	if err := row.Scan(&id, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Project{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project id %q: %w", id, err)
	}
	p.ID = parsed
	p.Tasks = []domain.Task{}
	return p, nil
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		t                 domain.Task
		id, projectID, st string
	)
	if err := row.Scan(&id, &t.Name, &t.Description, &st, &projectID, &t.ProjectName, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	var err error
	if t.ID, err = uuid.Parse(id); err != nil {
		return domain.Task{}, fmt.Errorf("task id %q: %w", id, err)
	}
	if t.ProjectID, err = uuid.Parse(projectID); err != nil {
		return domain.Task{}, fmt.Errorf("task project id %q: %w", projectID, err)
	}
	t.Status = domain.TaskStatus(st)
	return t, nil
}

func collectTasks(rows pgx.Rows) ([]domain.Task, error) {
	defer rows.Close()

	out := make([]domain.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// dbError classifies a driver error: integrity violations become conflicts,
// everything else a database error carrying the cause for the logs.
func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if postgres.IsIntegrityViolation(err) {
		return apperr.Conflict("Resource conflict: the operation violates a data constraint", fmt.Errorf("%s: %w", op, err))
	}
	return apperr.New(apperr.CodeDatabase, "", fmt.Errorf("%s: %w", op, err))
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
