package dto

import (
	"time"

	"main/model"
)

type TodoResponse struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Completed    bool       `json:"completed"`
	CompleteBy   *time.Time `json:"complete_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	TimeUntilDue string     `json:"time_until_due,omitempty"` // Computed field
}

// Convert model.Todo to TodoResponse
func ToTodoResponse(todo *model.Todo) TodoResponse {
	response := TodoResponse{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}

	if !todo.CompleteBy.IsZero() {
		completeBy := todo.CompleteBy
		response.CompleteBy = &completeBy

		if !todo.Completed {
			if completeBy.Before(time.Now()) {
				response.TimeUntilDue = "Overdue"
			} else {
				response.TimeUntilDue = time.Until(completeBy).Round(time.Minute).String()
			}
		}
	}

	return response
}

// Convert slice of todos to slice of TodoResponse
func ToTodoResponses(todos []*model.Todo) []TodoResponse {
	responses := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		responses[i] = ToTodoResponse(todo)
	}
	return responses
}
