package usecase

import (
	"context"
	"time"

	"main/model"
	"main/repository"
)

type TodoService struct {
	TodosRepo repository.TodosRepository
}

// CreateTodo creates a todo owned by userID. An optional complete-by
// deadline must lie in the future.
func (svc *TodoService) CreateTodo(ctx context.Context, userID, text string, completeBy time.Time) (*model.Todo, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	if !completeBy.IsZero() && completeBy.Before(time.Now()) {
		return nil, model.ErrDeadlinePast
	}

	todo := &model.Todo{
		UserID:     userID,
		Text:       text,
		CompleteBy: completeBy,
	}

	if err := svc.TodosRepo.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (svc *TodoService) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	return svc.TodosRepo.GetUserTodos(ctx, userID)
}

// UpdateTodo replaces the text, completed flag and deadline of a todo owned
// by userID.
func (svc *TodoService) UpdateTodo(ctx context.Context, userID, todoID string, updates *model.Todo) (*model.Todo, error) {
	text, err := validateText(updates.Text)
	if err != nil {
		return nil, err
	}
	updates.Text = text

	return svc.TodosRepo.UpdateTodo(ctx, todoID, userID, updates)
}

// ToggleTodo flips the completed flag.
func (svc *TodoService) ToggleTodo(ctx context.Context, userID, todoID string) (*model.Todo, error) {
	return svc.TodosRepo.ToggleTodoComplete(ctx, todoID, userID)
}

func (svc *TodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return svc.TodosRepo.DeleteTodo(ctx, todoID, userID)
}
