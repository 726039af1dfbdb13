package dto

import (
	"time"

	"main/model"
)

type NoteResponse struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Text         string    `json:"text"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:           note.ID,
		Participants: note.Participants,
		Text:         note.Text,
		CreatedBy:    note.CreatedBy,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
	}
}

// Convert slice of notes to slice of NoteResponse
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
