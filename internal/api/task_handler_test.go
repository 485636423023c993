package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lunarhall/taskdeck-api/internal/domain"
	"github.com/lunarhall/taskdeck-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTaskService is a mock implementation of service.TaskService for testing.
type MockTaskService struct {
	ListTasksFn        func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn          func(ctx context.Context, id int64) (*domain.Task, error)
	CreateTaskFn       func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateTaskStatusFn func(ctx context.Context, id int64, status domain.TaskStatus) (int64, error)
	DeleteTaskFn       func(ctx context.Context, id int64) (int64, error)
}

func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, service.ErrTaskNotFound
}

func (m *MockTaskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, task)
	}
	stored := *task
	stored.ID = 1
	return &stored, nil
}

func (m *MockTaskService) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, id, status)
	}
	return id, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) (int64, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return id, nil
}

// newTestRouter mounts a TaskHandler on the routes the server uses, so
// chi URL parameters resolve exactly as they do in production.
func newTestRouter(svc service.TaskService) http.Handler {
	h := NewTaskHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}", h.UpdateTaskStatus)
		r.Delete("/tasks/{id}", h.DeleteTask)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	return data
}

func strPtr(s string) *string {
	return &s
}

func TestListTasks(t *testing.T) {
	t.Run("empty_store_returns_empty_array", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, []interface{}{}, data["tasks"])
	})

	t.Run("returns_all_tasks_in_order", func(t *testing.T) {
		dueDate := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)
		router := newTestRouter(&MockTaskService{
			ListTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
				return []*domain.Task{
					{ID: 1, Title: "Test Task 1", Description: strPtr("First"), Status: domain.TaskStatusPending, DueDate: dueDate},
					{ID: 2, Title: "Test Task 2", Status: domain.TaskStatusCompleted, DueDate: dueDate},
				}, nil
			},
		})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)
		tasks := data["tasks"].([]interface{})
		require.Len(t, tasks, 2)
		first := tasks[0].(map[string]interface{})
		second := tasks[1].(map[string]interface{})
		assert.Equal(t, "Test Task 1", first["title"])
		assert.Equal(t, "Test Task 2", second["title"])
		assert.Nil(t, second["description"])
	})

	t.Run("storage_error_returns_500", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			ListTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
				return nil, errors.New("connection refused")
			},
		})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Failed to fetch tasks", data["error"])
	})
}

func TestGetTask(t *testing.T) {
	dueDate := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)

	t.Run("existing_task", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			GetTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return &domain.Task{ID: id, Title: "Test Task for ID", Status: domain.TaskStatusPending, DueDate: dueDate}, nil
			},
		})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks/42", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)
		task := data["task"].(map[string]interface{})
		assert.Equal(t, float64(42), task["id"])
		assert.Equal(t, "Test Task for ID", task["title"])
		assert.Equal(t, "pending", task["status"])
	})

	t.Run("missing_task_returns_404", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks/999999", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Task not found", data["error"])
	})

	t.Run("non_numeric_id_returns_400", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			GetTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				t.Fatal("service should not be called for an invalid id")
				return nil, nil
			},
		})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks/invalid", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Error: Invalid Request", data["message"])
		issues := data["error"].([]interface{})
		require.Len(t, issues, 1)
		issue := issues[0].(map[string]interface{})
		assert.Equal(t, "id", issue["field"])
		assert.Equal(t, "ID must be a number", issue["message"])
	})

	t.Run("id_beyond_int64_returns_404", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			GetTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				t.Fatal("service should not be called for an unrepresentable id")
				return nil, nil
			},
		})

		// All digits, so well-formed, but larger than any assignable id.
		rec := doRequest(t, router, http.MethodGet, "/api/tasks/92233720368547758080", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Task not found", data["error"])
	})

	t.Run("storage_error_returns_500", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			GetTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, errors.New("connection refused")
			},
		})

		rec := doRequest(t, router, http.MethodGet, "/api/tasks/1", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Failed to fetch task", data["error"])
	})
}

func TestCreateTask(t *testing.T) {
	t.Run("valid_payload_returns_201_with_assigned_id", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				stored := *task
				stored.ID = 7
				return &stored, nil
			},
		})

		rec := doRequest(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":       "Write report",
			"description": "Quarterly summary",
			"status":      "pending",
			"dueDate":     "2026-12-31T23:59:59Z",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		data := decodeBody(t, rec)
		task := data["task"].(map[string]interface{})
		assert.Equal(t, float64(7), task["id"])
		assert.Equal(t, "Write report", task["title"])
		assert.Equal(t, "Quarterly summary", task["description"])
		assert.Equal(t, "pending", task["status"])
	})

	t.Run("omitted_status_defaults_to_pending", func(t *testing.T) {
		var created *domain.Task
		router := newTestRouter(&MockTaskService{
			CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				created = task
				stored := *task
				stored.ID = 8
				return &stored, nil
			},
		})

		rec := doRequest(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":   "Walk the dog",
			"dueDate": "2026-12-31T23:59:59Z",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, created)
		assert.Equal(t, domain.TaskStatusPending, created.Status)
	})

	t.Run("empty_title_returns_400_and_nothing_is_persisted", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				t.Fatal("service should not be called for an invalid payload")
				return nil, nil
			},
		})

		rec := doRequest(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":   "",
			"dueDate": "2026-12-31T23:59:59Z",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Error: Invalid Request", data["message"])
		issues := data["error"].([]interface{})
		require.NotEmpty(t, issues)
		issue := issues[0].(map[string]interface{})
		assert.Equal(t, "title", issue["field"])
	})

	t.Run("invalid_status_returns_400", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":   "Walk the dog",
			"status":  "archived",
			"dueDate": "2026-12-31T23:59:59Z",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Error: Invalid Request", data["message"])
	})

	t.Run("malformed_json_returns_400", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Error: Invalid Request", data["message"])
	})

	t.Run("storage_error_returns_500", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			CreateTaskFn: func(ctx context.Context, task *domain.Task) (*domain.Task, error) {
				return nil, errors.New("disk full")
			},
		})

		rec := doRequest(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
			"title":   "Walk the dog",
			"dueDate": "2026-12-31T23:59:59Z",
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Failed to create task", data["error"])
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	t.Run("valid_update_returns_confirmation", func(t *testing.T) {
		var gotStatus domain.TaskStatus
		router := newTestRouter(&MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
				gotStatus = status
				return id, nil
			},
		})

		rec := doRequest(t, router, http.MethodPut, "/api/tasks/5", map[string]interface{}{
			"status": "completed",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Task status updated successfully", data["message"])
		assert.Equal(t, float64(5), data["task"])
		assert.Equal(t, domain.TaskStatusCompleted, gotStatus)
	})

	t.Run("missing_task_returns_404", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
				return 0, service.ErrTaskNotFound
			},
		})

		rec := doRequest(t, router, http.MethodPut, "/api/tasks/999999", map[string]interface{}{
			"status": "completed",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Task not found", data["error"])
	})

	t.Run("invalid_status_returns_400", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodPut, "/api/tasks/5", map[string]interface{}{
			"status": "archived",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Error: Invalid Request", data["message"])
		issues := data["error"].([]interface{})
		require.Len(t, issues, 1)
		issue := issues[0].(map[string]interface{})
		assert.Equal(t, "status", issue["field"])
		assert.Equal(t, "oneof", issue["rule"])
	})

	t.Run("non_numeric_id_returns_400", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodPut, "/api/tasks/abc", map[string]interface{}{
			"status": "completed",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage_error_returns_500", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
				return 0, errors.New("connection refused")
			},
		})

		rec := doRequest(t, router, http.MethodPut, "/api/tasks/5", map[string]interface{}{
			"status": "completed",
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Failed to update task", data["error"])
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("existing_task_returns_deleted_id", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodDelete, "/api/tasks/9", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Task deleted successfully", data["message"])
		assert.Equal(t, float64(9), data["task"])
	})

	t.Run("second_delete_returns_404", func(t *testing.T) {
		deleted := map[int64]bool{}
		router := newTestRouter(&MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) (int64, error) {
				if deleted[id] {
					return 0, service.ErrTaskNotFound
				}
				deleted[id] = true
				return id, nil
			},
		})

		first := doRequest(t, router, http.MethodDelete, "/api/tasks/9", nil)
		assert.Equal(t, http.StatusOK, first.Code)

		second := doRequest(t, router, http.MethodDelete, "/api/tasks/9", nil)
		assert.Equal(t, http.StatusNotFound, second.Code)
		data := decodeBody(t, second)
		assert.Equal(t, "Task not found", data["error"])
	})

	t.Run("non_numeric_id_returns_400", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{})

		rec := doRequest(t, router, http.MethodDelete, "/api/tasks/abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage_error_returns_500", func(t *testing.T) {
		router := newTestRouter(&MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) (int64, error) {
				return 0, errors.New("connection refused")
			},
		})

		rec := doRequest(t, router, http.MethodDelete, "/api/tasks/9", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		data := decodeBody(t, rec)
		assert.Equal(t, "Failed to delete task", data["error"])
	})
}
