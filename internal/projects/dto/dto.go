// Package dto converts between HTTP payloads and project/task entities.
package dto

import (
	"strings"
	"time"

	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

// TimeLayout renders timestamps as HH:mm:ss dd-MM-yyyy.
const TimeLayout = "15:04:05 02-01-2006"

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

type ProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type TaskRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	ProjectID   string  `json:"projectId"`
}

type ProjectResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	TaskCount   int     `json:"taskCount"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	ProjectID   string  `json:"projectId"`
	ProjectName string  `json:"projectName"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToProject maps a request onto a partially populated entity. Ids, owner,
// timestamps and tasks are never taken from the client.
func ToProject(req ProjectRequest) domain.Project {
	return domain.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
}

// ToTask maps a request onto a partially populated task. A missing status
// is left empty so the service applies its default; an unknown one is kept
// verbatim and rejected by validation.
func ToTask(req TaskRequest) domain.Task {
	t := domain.Task{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if req.Status != nil {
		if st, ok := domain.ParseTaskStatus(*req.Status); ok {
			t.Status = st
		} else {
			t.Status = domain.TaskStatus(*req.Status)
		}
	}
	return t
}

func FromProject(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		TaskCount:   p.OpenTaskCount(),
		CreatedAt:   FormatTime(p.CreatedAt),
		UpdatedAt:   FormatTime(p.UpdatedAt),
	}
}

func FromTask(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		ProjectID:   t.ProjectID.String(),
		ProjectName: t.ProjectName,
		CreatedAt:   FormatTime(t.CreatedAt),
		UpdatedAt:   FormatTime(t.UpdatedAt),
	}
}

func FromProjects(ps []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProject(p))
	}
	return out
}

func FromTasks(ts []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTask(t))
	}
	return out
}

func FromProjectPage(p pagination.Page[domain.Project]) pagination.Page[ProjectResponse] {
	return pagination.Map(p, FromProject)
}

func FromTaskPage(p pagination.Page[domain.Task]) pagination.Page[TaskResponse] {
	return pagination.Map(p, FromTask)
}
