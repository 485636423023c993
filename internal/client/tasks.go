package client

import (
	"context"
	"sync"

	"github.com/lunarhall/taskdeck-api/internal/domain"
)

// Tasks is a cached view over the task API. Reads are served from the
// cache once loaded; every successful mutation invalidates the cache so
// the next read refetches. Safe for concurrent use.
type Tasks struct {
	client *Client

	mu       sync.Mutex
	cache    []*domain.Task
	loaded   bool
	creating bool
	updating bool
	deleting bool
}

// NewTasks creates a Tasks view backed by the given client.
func NewTasks(client *Client) *Tasks {
	if client == nil {
		panic("client cannot be nil")
	}
	return &Tasks{client: client}
}

// List returns the task list, fetching from the server only when the
// cache is empty or has been invalidated by a mutation.
func (t *Tasks) List(ctx context.Context) ([]*domain.Task, error) {
	t.mu.Lock()
	if t.loaded {
		cached := make([]*domain.Task, len(t.cache))
		copy(cached, t.cache)
		t.mu.Unlock()
		return cached, nil
	}
	t.mu.Unlock()

	tasks, err := t.client.List(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.cache = tasks
	t.loaded = true
	t.mu.Unlock()

	result := make([]*domain.Task, len(tasks))
	copy(result, tasks)
	return result, nil
}

// Get fetches a single task by ID. Detail reads always hit the server
// so a freshly toggled status is never stale.
func (t *Tasks) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return t.client.Get(ctx, id)
}

// Create creates a task and invalidates the cached list on success.
func (t *Tasks) Create(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	t.setCreating(true)
	defer t.setCreating(false)

	task, err := t.client.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	t.invalidate()
	return task, nil
}

// UpdateStatus updates a task's status and invalidates the cached list
// on success.
func (t *Tasks) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (int64, error) {
	t.setUpdating(true)
	defer t.setUpdating(false)

	updatedID, err := t.client.UpdateStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}
	t.invalidate()
	return updatedID, nil
}

// Delete deletes a task and invalidates the cached list on success.
func (t *Tasks) Delete(ctx context.Context, id int64) (int64, error) {
	t.setDeleting(true)
	defer t.setDeleting(false)

	deletedID, err := t.client.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	t.invalidate()
	return deletedID, nil
}

// IsCreating reports whether a Create call is in flight.
func (t *Tasks) IsCreating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.creating
}

// IsUpdating reports whether an UpdateStatus call is in flight.
func (t *Tasks) IsUpdating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updating
}

// IsDeleting reports whether a Delete call is in flight.
func (t *Tasks) IsDeleting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleting
}

func (t *Tasks) invalidate() {
	t.mu.Lock()
	t.cache = nil
	t.loaded = false
	t.mu.Unlock()
}

func (t *Tasks) setCreating(v bool) {
	t.mu.Lock()
	t.creating = v
	t.mu.Unlock()
}

func (t *Tasks) setUpdating(v bool) {
	t.mu.Lock()
	t.updating = v
	t.mu.Unlock()
}

func (t *Tasks) setDeleting(v bool) {
	t.mu.Lock()
	t.deleting = v
	t.mu.Unlock()
}
