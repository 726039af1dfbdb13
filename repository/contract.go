package repository

import (
	"context"

	"main/model"
)

// NotesRepository is what the notes service needs from persistence.
type NotesRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNote(ctx context.Context, noteID string) (*model.Note, error)
	GetPairNotes(ctx context.Context, userA, userB string) ([]*model.Note, error)
	UpdateNoteText(ctx context.Context, noteID, text string) (*model.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
}

// TodosRepository is what the todo service needs from persistence.
type TodosRepository interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodo(ctx context.Context, todoID, userID string) (*model.Todo, error)
	GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, todoID, userID string, updates *model.Todo) (*model.Todo, error)
	ToggleTodoComplete(ctx context.Context, todoID, userID string) (*model.Todo, error)
	DeleteTodo(ctx context.Context, todoID, userID string) error
}
