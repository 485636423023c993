// Package service provides application-level services for managing tasks.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lunarhall/taskdeck-api/internal/domain"
	"github.com/lunarhall/taskdeck-api/internal/store"
)

// Common sentinel errors for TaskService.
// Callers use errors.Is() to check for specific conditions; the API
// layer maps these onto HTTP status codes.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNilDependency indicates a service was constructed without a
	// required dependency.
	ErrNilDependency = errors.New("nil dependency")
)

// TaskService provides task-related operations. Each operation wraps a
// single database call in a failure boundary: a well-formed request for
// a missing row yields ErrTaskNotFound, and any storage failure is
// wrapped in a TaskServiceError for the API layer to report opaquely.
type TaskService interface {
	// ListTasks retrieves all tasks in insertion order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask persists a new task, already validated by the caller.
	// Returns the stored task including the database-assigned ID.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// UpdateTaskStatus updates the status of an existing task and
	// returns the updated row's ID.
	UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (int64, error)

	// DeleteTask permanently removes a task and returns the deleted row's ID.
	DeleteTask(ctx context.Context, id int64) (int64, error)
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	// Store-level sentinel errors map to service-level ones
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
