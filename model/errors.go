package model

import "errors"

// Sentinel errors returned by repositories and services. Handlers map them
// to HTTP statuses with errors.Is; anything else becomes a 500.
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrTodoNotFound = errors.New("todo not found")
	ErrNotCreator   = errors.New("only the creator can modify this note")
	ErrTextRequired = errors.New("text is required")
	ErrTextTooLong  = errors.New("text exceeds maximum length")
	ErrDeadlinePast = errors.New("complete-by deadline cannot be in the past")
)
