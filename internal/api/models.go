package api

import (
	"time"

	"github.com/lunarhall/taskdeck-api/internal/domain"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
// An omitted status defaults to pending.
type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Status      string    `json:"status"      validate:"omitempty,oneof=pending completed"`
	DueDate     time.Time `json:"dueDate"     validate:"required"`
}

// UpdateTaskStatusRequest defines the payload for the status update endpoint.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed"`
}

// TaskResponse wraps a single task, e.g. for get and create responses.
type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

// TaskListResponse wraps the full task collection for the list endpoint.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// MutationResponse is returned by the update and delete endpoints:
// a confirmation message plus the affected row's ID.
type MutationResponse struct {
	Message string `json:"message"`
	Task    int64  `json:"task"`
}

// ValidationIssue describes a single field-level validation failure:
// the field path, the violated rule, and a human-readable message.
type ValidationIssue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 envelope for malformed or
// out-of-range input, carrying the itemized field issues.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Error   []ValidationIssue `json:"error"`
}
