package store

import (
	"context"

	"github.com/lunarhall/taskdeck-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store. The store assigns the ID and
	// fills it in on the returned task. It handles domain validation
	// internally and returns validation errors if data is invalid.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// List retrieves all tasks in insertion order.
	// Returns an empty slice if the store holds no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateStatus updates the status of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the status is invalid.
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error

	// Delete removes a task by its unique ID. The delete is permanent.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
