package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a named container of tasks owned by a single identity subject.
// OwnerID never changes after creation.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description *string
	OwnerID     string
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OpenTaskCount is the number of tasks that are not DONE.
func (p Project) OpenTaskCount() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Status != TaskStatusDone {
			n++
		}
	}
	return n
}

// Task belongs to exactly one project; its owner is the project's owner.
type Task struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Status      TaskStatus
	ProjectID   uuid.UUID
	ProjectName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
