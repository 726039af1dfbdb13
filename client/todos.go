package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"main/model"
)

// TodoClient mirrors the caller's personal todo list. Same shape as
// NoteClient but single-user and without a push subscription: local state
// changes only after the HTTP response arrives, so there is no rollback
// path.
type TodoClient struct {
	cfg Config

	mu    sync.Mutex
	state State
	todos []model.Todo
}

func NewTodoClient(cfg Config) *TodoClient {
	return &TodoClient{cfg: cfg, state: StateIdle}
}

func (t *TodoClient) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Todos returns a snapshot of the local list.
func (t *TodoClient) Todos() []model.Todo {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.Todo, len(t.todos))
	copy(out, t.todos)
	return out
}

// Load fetches the full todo list and replaces local state.
func (t *TodoClient) Load(ctx context.Context) error {
	t.mu.Lock()
	t.state = StateLoading
	t.mu.Unlock()

	var todos []model.Todo
	err := doJSON(ctx, t.cfg, http.MethodGet, "/api/todos", nil, &todos)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.state = StateIdle
		t.cfg.notifyError("Failed to fetch todos")
		return err
	}

	t.todos = todos
	t.state = StateReady
	return nil
}

// Add creates a todo and prepends the response, newest first.
func (t *TodoClient) Add(ctx context.Context, text string, completeBy time.Time) (*model.Todo, error) {
	body := map[string]interface{}{"text": text}
	if !completeBy.IsZero() {
		body["complete_by"] = completeBy
	}

	var todo model.Todo
	if err := doJSON(ctx, t.cfg, http.MethodPost, "/api/todos", body, &todo); err != nil {
		t.cfg.notifyError("Failed to add todo")
		return nil, err
	}

	t.mu.Lock()
	t.todos = append([]model.Todo{todo}, t.todos...)
	t.state = StateReady
	t.mu.Unlock()

	return &todo, nil
}

// Update replaces a todo's fields from the response.
func (t *TodoClient) Update(ctx context.Context, todoID string, updates model.Todo) (*model.Todo, error) {
	body := map[string]interface{}{
		"text":      updates.Text,
		"completed": updates.Completed,
	}
	if !updates.CompleteBy.IsZero() {
		body["complete_by"] = updates.CompleteBy
	}

	var todo model.Todo
	if err := doJSON(ctx, t.cfg, http.MethodPatch, "/api/todos/"+todoID, body, &todo); err != nil {
		t.cfg.notifyError("Failed to update todo")
		return nil, err
	}

	t.mu.Lock()
	t.replaceLocked(todo)
	t.state = StateReady
	t.mu.Unlock()

	return &todo, nil
}

// Toggle flips a todo's completed flag.
func (t *TodoClient) Toggle(ctx context.Context, todoID string) (*model.Todo, error) {
	var todo model.Todo
	if err := doJSON(ctx, t.cfg, http.MethodPatch, "/api/todos/"+todoID+"/toggle", nil, &todo); err != nil {
		t.cfg.notifyError("Failed to toggle todo")
		return nil, err
	}

	t.mu.Lock()
	t.replaceLocked(todo)
	t.state = StateReady
	t.mu.Unlock()

	return &todo, nil
}

// Delete removes a todo.
func (t *TodoClient) Delete(ctx context.Context, todoID string) error {
	if err := doJSON(ctx, t.cfg, http.MethodDelete, "/api/todos/"+todoID, nil, nil); err != nil {
		t.cfg.notifyError("Failed to delete todo")
		return err
	}

	t.mu.Lock()
	for i := range t.todos {
		if t.todos[i].ID == todoID {
			t.todos = append(t.todos[:i], t.todos[i+1:]...)
			break
		}
	}
	t.state = StateReady
	t.mu.Unlock()

	return nil
}

func (t *TodoClient) replaceLocked(todo model.Todo) {
	for i := range t.todos {
		if t.todos[i].ID == todo.ID {
			t.todos[i] = todo
			return
		}
	}
	t.todos = append(t.todos, todo)
}
