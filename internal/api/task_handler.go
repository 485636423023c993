package api

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lunarhall/taskdeck-api/internal/api/shared"
	"github.com/lunarhall/taskdeck-api/internal/domain"
	"github.com/lunarhall/taskdeck-api/internal/platform/logger"
	"github.com/lunarhall/taskdeck-api/internal/service"
)

// idPattern is the required shape of the {id} path segment.
var idPattern = regexp.MustCompile(`^\d+$`)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// getPathID extracts and validates the numeric {id} path parameter.
// On failure it writes the standard 400 envelope and returns false.
func (h *TaskHandler) getPathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	raw := chi.URLParam(r, "id")
	if !idPattern.MatchString(raw) {
		log.Debug("invalid task id in path", slog.String("id", raw))
		RespondWithValidationIssues(w, r, []ValidationIssue{{
			Field:   "id",
			Rule:    "pattern",
			Message: "ID must be a number",
		}})
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Digits only but too large for int64: well-formed, but no row
		// can match.
		log.Debug("task id out of range", slog.String("id", raw))
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return 0, false
	}

	return id, true
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to fetch tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.getPathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		if statusCode := MapErrorToStatusCode(err); statusCode == http.StatusNotFound {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to fetch task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskResponse{Task: task})
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("malformed task payload", slog.String("error", err.Error()))
		RespondWithValidationIssues(w, r, []ValidationIssue{{
			Field:   "body",
			Rule:    "json",
			Message: "Request body must be valid JSON",
		}})
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		RespondWithValidationIssues(w, r, IssuesFromValidationError(err))
		return
	}

	task, err := domain.NewTask(req.Title, req.Description, domain.TaskStatus(req.Status), req.DueDate)
	if err != nil {
		RespondWithValidationIssues(w, r, []ValidationIssue{{
			Field:   "body",
			Rule:    "domain",
			Message: err.Error(),
		}})
		return
	}

	created, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{Task: created})
}

// UpdateTaskStatus handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.getPathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("malformed status payload", slog.String("error", err.Error()))
		RespondWithValidationIssues(w, r, []ValidationIssue{{
			Field:   "body",
			Rule:    "json",
			Message: "Request body must be valid JSON",
		}})
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		RespondWithValidationIssues(w, r, IssuesFromValidationError(err))
		return
	}

	updatedID, err := h.taskService.UpdateTaskStatus(r.Context(), id, domain.TaskStatus(req.Status))
	if err != nil {
		if statusCode := MapErrorToStatusCode(err); statusCode == http.StatusNotFound {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MutationResponse{
		Message: "Task status updated successfully",
		Task:    updatedID,
	})
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.getPathID(w, r)
	if !ok {
		return
	}

	deletedID, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		if statusCode := MapErrorToStatusCode(err); statusCode == http.StatusNotFound {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete task", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MutationResponse{
		Message: "Task deleted successfully",
		Task:    deletedID,
	})
}
