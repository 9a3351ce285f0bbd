package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/taskmgmt/task-management-api/internal/apperr"
)

func parseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e := apperr.New(apperr.CodeMissingRequiredField, "", nil)
		e.FieldErrors = []apperr.FieldError{{Field: field, Message: field + " is required"}}
		return uuid.Nil, e
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.InvalidUUID(field, raw)
	}
	return id, nil
}
