package task

import (
	"errors"
	"time"

	"github.com/Subramanya2/tasktrack-core/internal/auth"
)

// Status represents a task's progress state.
// It is a closed enumeration with no open extension at runtime.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ValidStatuses is the set of valid task statuses.
var ValidStatuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// IsValidStatus returns true if the status is one of the closed set.
func IsValidStatus(s Status) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Field length limits, matching the reference schema.
const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// OwnerInfo is the owner annotation attached to tasks in administrator
// listings. It is a lookup result, never stored on the task row.
type OwnerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task represents a single tracked task.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	UserID      string     `json:"user_id"`
	Owner       *OwnerInfo `json:"owner,omitempty"` // admin listings only
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ErrTaskNotFound is returned when a task id does not resolve.
var ErrTaskNotFound = errors.New("task not found")

// Input is client-supplied task content. Any owner field a client sends
// is dropped before it reaches this struct; ownership always derives
// from the authenticated identity.
type Input struct {
	Title       string
	Description string
	Status      Status
}

// Validate checks task input and reports every violated field.
func (in Input) Validate() error {
	var fields []auth.FieldError

	if in.Title == "" {
		fields = append(fields, auth.FieldError{Field: "title", Message: "Please add a title"})
	} else if len(in.Title) > maxTitleLength {
		fields = append(fields, auth.FieldError{Field: "title", Message: "Title can not be more than 100 characters"})
	}

	if len(in.Description) > maxDescriptionLength {
		fields = append(fields, auth.FieldError{Field: "description", Message: "Description can not be more than 500 characters"})
	}

	if in.Status != "" && !IsValidStatus(in.Status) {
		fields = append(fields, auth.FieldError{Field: "status", Message: "Status must be pending, in-progress or completed"})
	}

	if len(fields) > 0 {
		return &auth.ValidationError{Fields: fields}
	}
	return nil
}
