// Package client provides a typed HTTP client for the task API and a
// small cached view over it for interactive callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lunarhall/taskdeck-api/internal/domain"
)

// defaultTimeout bounds every request issued by the client.
const defaultTimeout = 10 * time.Second

// Client issues the five task API calls against a server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API rooted at baseURL,
// e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// APIError is returned for any non-2xx response, carrying the status
// code and the server's error message when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// CreateTaskParams is the payload for Create. A zero DueDate is sent as
// the current time, matching the browser client's behavior.
type CreateTaskParams struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate"`
}

// taskEnvelope mirrors the {"task": ...} response wrapper.
type taskEnvelope struct {
	Task *domain.Task `json:"task"`
}

// taskListEnvelope mirrors the {"tasks": [...]} response wrapper.
type taskListEnvelope struct {
	Tasks []*domain.Task `json:"tasks"`
}

// mutationEnvelope mirrors the {"message": ..., "task": id} wrapper
// returned by update and delete.
type mutationEnvelope struct {
	Message string `json:"message"`
	Task    int64  `json:"task"`
}

// List fetches all tasks.
func (c *Client) List(ctx context.Context) ([]*domain.Task, error) {
	var env taskListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return env.Tasks, nil
}

// Get fetches a single task by ID.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Task, error) {
	var env taskEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return env.Task, nil
}

// Create creates a new task and returns the stored row, including the
// server-assigned ID.
func (c *Client) Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	if params.Status == "" {
		params.Status = string(domain.TaskStatusPending)
	}
	if params.DueDate == "" {
		params.DueDate = time.Now().UTC().Format(time.RFC3339)
	}

	var env taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/tasks", params, &env); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return env.Task, nil
}

// UpdateStatus sets the status of the task with the given ID and
// returns the updated row's ID.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
	body := map[string]string{"status": string(status)}

	var env mutationEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), body, &env); err != nil {
		return 0, fmt.Errorf("failed to update task status: %w", err)
	}
	return env.Task, nil
}

// Delete removes the task with the given ID and returns the deleted
// row's ID.
func (c *Client) Delete(ctx context.Context, id int64) (int64, error) {
	var env mutationEnvelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, &env); err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	return env.Task, nil
}

// do issues a request and decodes the JSON response into out.
// Non-2xx responses yield an *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error   json.RawMessage `json:"error"`
			Message string          `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			// The error field is a string for 404/500 and an issue list
			// for validation failures; prefer the top-level message then.
			var msg string
			if json.Unmarshal(errBody.Error, &msg) == nil {
				apiErr.Message = msg
			} else if errBody.Message != "" {
				apiErr.Message = errBody.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
