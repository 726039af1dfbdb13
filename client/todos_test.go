package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"main/handler"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeTodosRepo struct {
	mu    sync.Mutex
	todos map[string]*model.Todo
	clock time.Time
}

var _ repository.TodosRepository = (*fakeTodosRepo)(nil)

func newFakeTodosRepo() *fakeTodosRepo {
	return &fakeTodosRepo{
		todos: make(map[string]*model.Todo),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeTodosRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeTodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := f.tick()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	stored := *todo
	f.todos[todo.ID] = &stored
	return nil
}

func (f *fakeTodosRepo) GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo, ok := f.todos[todoID]
	if !ok || todo.UserID != userID {
		return nil, model.ErrTodoNotFound
	}
	copied := *todo
	return &copied, nil
}

func (f *fakeTodosRepo) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*model.Todo, 0)
	for _, todo := range f.todos {
		if todo.UserID == userID {
			copied := *todo
			result = append(result, &copied)
		}
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (f *fakeTodosRepo) UpdateTodo(ctx context.Context, todoID, userID string, updates *model.Todo) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo, ok := f.todos[todoID]
	if !ok || todo.UserID != userID {
		return nil, model.ErrTodoNotFound
	}
	todo.Text = updates.Text
	todo.Completed = updates.Completed
	todo.CompleteBy = updates.CompleteBy
	todo.UpdatedAt = f.tick()
	copied := *todo
	return &copied, nil
}

func (f *fakeTodosRepo) ToggleTodoComplete(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo, ok := f.todos[todoID]
	if !ok || todo.UserID != userID {
		return nil, model.ErrTodoNotFound
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = f.tick()
	copied := *todo
	return &copied, nil
}

func (f *fakeTodosRepo) DeleteTodo(ctx context.Context, todoID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	todo, ok := f.todos[todoID]
	if !ok || todo.UserID != userID {
		return model.ErrTodoNotFound
	}
	delete(f.todos, todoID)
	return nil
}

func startTodosServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := &usecase.TodoService{TodosRepo: newFakeTodosRepo()}

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware())

	todoHandler := handler.NewTodoHandler(svc)
	todos := api.Group("/todos")
	{
		todos.GET("", todoHandler.GetUserTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.PATCH("/:id", todoHandler.UpdateTodo)
		todos.PATCH("/:id/toggle", todoHandler.ToggleTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newTestTodoClient(t *testing.T, srv *httptest.Server, userID string, onError func(string)) *TodoClient {
	t.Helper()

	token, err := utils.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	return NewTodoClient(Config{
		BaseURL: srv.URL,
		UserID:  userID,
		Token:   token,
		OnError: onError,
	})
}

func TestTodoClientLifecycle(t *testing.T) {
	srv := startTodosServer(t)
	ctx := context.Background()

	var errMessages []string
	store := newTestTodoClient(t, srv, "user-a", func(msg string) {
		errMessages = append(errMessages, msg)
	})

	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.State() != StateReady {
		t.Error("Store should be ready after load")
	}

	first, err := store.Add(ctx, "buy milk", time.Time{})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := store.Add(ctx, "file taxes", time.Now().Add(48*time.Hour))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// newest first locally
	got := store.Todos()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("Expected newest-first ordering, got %v", got)
	}

	toggled, err := store.Toggle(ctx, first.ID)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !toggled.Completed {
		t.Error("Toggle should mark the todo completed")
	}
	for _, todo := range store.Todos() {
		if todo.ID == first.ID && !todo.Completed {
			t.Error("Local list not reconciled after toggle")
		}
	}

	updated, err := store.Update(ctx, second.ID, model.Todo{Text: "file taxes early", Completed: false})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Text != "file taxes early" {
		t.Errorf("Expected updated text, got %q", updated.Text)
	}

	// a rejected add fires OnError and leaves the list alone
	if _, err := store.Add(ctx, "  ", time.Time{}); err == nil {
		t.Error("Blank text should fail")
	}
	if len(errMessages) == 0 {
		t.Error("Failed add should invoke OnError")
	}
	if len(store.Todos()) != 2 {
		t.Error("Failed add should not change local state")
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got = store.Todos()
	if len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("Expected only the second todo to remain, got %v", got)
	}

	// a reload agrees with the local state
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	got = store.Todos()
	if len(got) != 1 || got[0].Text != "file taxes early" {
		t.Fatalf("Server state diverged from local state: %v", got)
	}
}

func TestTodoClientScopedToOwnUser(t *testing.T) {
	srv := startTodosServer(t)
	ctx := context.Background()

	alice := newTestTodoClient(t, srv, "user-a", nil)
	bob := newTestTodoClient(t, srv, "user-b", nil)

	created, err := alice.Add(ctx, "alice's errand", time.Time{})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := bob.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(bob.Todos()) != 0 {
		t.Error("One user's todos must not leak into another's list")
	}

	if _, err := bob.Toggle(ctx, created.ID); err == nil {
		t.Error("Toggling another user's todo should fail")
	}
	if err := bob.Delete(ctx, created.ID); err == nil {
		t.Error("Deleting another user's todo should fail")
	}
}
