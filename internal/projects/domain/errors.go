package domain

import "github.com/taskmgmt/task-management-api/internal/apperr"

var (
	ErrProjectNotFound = apperr.NotFound(apperr.CodeProjectNotFound, "Project not found")
	ErrTaskNotFound    = apperr.NotFound(apperr.CodeTaskNotFound, "Task not found")
)
