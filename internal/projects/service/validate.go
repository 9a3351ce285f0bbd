package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return domain.TaskStatus(fl.Field().String()).Valid()
	})
	return v
}

type fieldRule struct {
	field   string
	value   any
	tag     string
	message string
}

func check(rules ...fieldRule) []apperr.FieldError {
	var out []apperr.FieldError
	for _, r := range rules {
		if err := validate.Var(r.value, r.tag); err != nil {
			out = append(out, apperr.FieldError{Field: r.field, Message: r.message})
		}
	}
	return out
}

func validateProject(p domain.Project) error {
	errs := check(
		fieldRule{"name", p.Name, "required,notblank", "Project name is required"},
	)
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}

// validateTask checks name and status. An unknown status is reported with
// its own code so clients can tell it apart from a missing name.
func validateTask(t domain.Task) error {
	errs := check(
		fieldRule{"name", t.Name, "required,notblank", "Task name is required"},
	)
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}
	if fe := check(fieldRule{"status", string(t.Status), "taskstatus", "Status must be one of TODO, IN_PROGRESS, DONE"}); len(fe) > 0 {
		e := apperr.New(apperr.CodeInvalidTaskStatus, "", nil)
		e.FieldErrors = fe
		return e
	}
	return nil
}
