package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lunarhall/taskdeck-api/internal/domain"
	"github.com/lunarhall/taskdeck-api/internal/platform/logger"
	"github.com/lunarhall/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation, and
// returns the stored row including the database-assigned ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (title, description, status, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, status, due_date
	`

	var created domain.Task
	var status string

	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
	).Scan(
		&created.ID,
		&created.Title,
		&created.Description,
		&status,
		&created.DueDate,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return nil, MapError(err)
	}

	created.Status = domain.TaskStatus(status)

	log.Info("task created successfully",
		slog.Int64("task_id", created.ID),
		slog.String("status", string(created.Status)))
	return &created, nil
}

// List implements store.TaskStore.List
// It retrieves all tasks in insertion order.
// Returns an empty slice if the table holds no rows.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status, due_date
		FROM tasks
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var status string

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&status,
			&task.DueDate,
		)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}

		task.Status = domain.TaskStatus(status)
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	query := `
		SELECT id, title, description, status, due_date
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.DueDate,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	task.Status = domain.TaskStatus(status)

	return &task, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// It updates the status of an existing task.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns domain.ErrInvalidTaskStatus if the status is invalid.
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidTaskStatus(status) {
		log.Warn("invalid status for task update",
			slog.Int64("task_id", id),
			slog.String("status", string(status)))
		return domain.ErrInvalidTaskStatus
	}

	query := `
		UPDATE tasks
		SET status = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id),
			slog.String("status", string(status)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("task not found for status update", slog.Int64("task_id", id))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task status updated successfully",
		slog.Int64("task_id", id),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.TaskStore.Delete
// It permanently removes a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		if IsNotFoundError(err) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return store.ErrTaskNotFound
		}
		return err
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}
