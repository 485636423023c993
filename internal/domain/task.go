package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Field length limits enforced on task data.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Common validation errors for Task
var (
	ErrEmptyTaskTitle         = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong       = errors.New("task title too long")
	ErrTaskDescriptionTooLong = errors.New("task description too long")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrMissingTaskDueDate     = errors.New("task due date is required")
)

// Task is a single tracked item of work. The ID is assigned by the
// database on creation and never reused; only Status is mutable after
// creation.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     time.Time  `json:"dueDate"`
}

// NewTask creates a new Task with the given title, optional description
// and due date. The status defaults to pending when empty.
// Returns an error if validation fails.
func NewTask(title string, description *string, status TaskStatus, dueDate time.Time) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if len(t.Title) > MaxTitleLength {
		return ErrTaskTitleTooLong
	}

	if t.Description != nil && len(*t.Description) > MaxDescriptionLength {
		return ErrTaskDescriptionTooLong
	}

	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if t.DueDate.IsZero() {
		return ErrMissingTaskDueDate
	}

	return nil
}

// UpdateStatus updates the task's status.
// Returns an error if the new status is invalid.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !IsValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	return nil
}

// IsValidTaskStatus checks if the given status is a valid TaskStatus.
func IsValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
