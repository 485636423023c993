package service

import (
	"context"
	"log/slog"

	"github.com/lunarhall/taskdeck-api/internal/domain"
	"github.com/lunarhall/taskdeck-api/internal/platform/logger"
	"github.com/lunarhall/taskdeck-api/internal/store"
)

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService backed by the given store.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, NewTaskServiceError("initialization", "task store cannot be nil", ErrNilDependency)
	}
	if logger == nil {
		return nil, NewTaskServiceError("initialization", "logger cannot be nil", ErrNilDependency)
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to get task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}

	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return nil, NewTaskServiceError("create_task", "failed to create task", err)
	}

	return created, nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.UpdateStatus(ctx, id, status); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to update task status",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id),
				slog.String("status", string(status)))
		}
		return 0, NewTaskServiceError("update_task_status", "failed to update task status", err)
	}

	return id, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return 0, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	return id, nil
}
