package usecase

import (
	"context"
	"fmt"
	"strings"

	"main/middleware"
	"main/model"
	"main/repository"
)

const maxNoteTextLength = 50000

// Notifier pushes a note event to both participants' live connections, if
// any. Delivery is best-effort: it is not part of any operation's success
// contract and exposes no error channel.
type Notifier interface {
	NotifyPair(userA, userB string, event model.NoteEvent)
}

type NotesService struct {
	NotesRepo repository.NotesRepository
	Notifier  Notifier
}

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", model.ErrTextRequired
	}
	if len(text) > maxNoteTextLength {
		return "", model.ErrTextTooLong
	}
	return text, nil
}

// GetPairNotes returns every note shared between the requester and the
// counterpart, oldest first. A pair with no notes yet gets an empty list.
func (svc *NotesService) GetPairNotes(ctx context.Context, userID, friendID string) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.GetPairNotes(ctx, userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return notes, nil
}

// CreateNote creates a note shared with friendID, created by userID.
func (svc *NotesService) CreateNote(ctx context.Context, userID, friendID, text string) (*model.Note, error) {
	text, err := validateText(text)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		Participants: []string{userID, friendID},
		Text:         text,
		CreatedBy:    userID,
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	middleware.TrackNoteOperation("create")
	svc.notifyParticipants(note, model.NoteEvent{
		Event: model.EventNoteAdded,
		Note:  note,
	})

	return note, nil
}

// UpdateNote replaces the text of a note. The creator-only guard runs before
// any write.
func (svc *NotesService) UpdateNote(ctx context.Context, userID, noteID, text string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if !note.CreatedByUser(userID) {
		return nil, model.ErrNotCreator
	}

	text, err = validateText(text)
	if err != nil {
		return nil, err
	}

	updated, err := svc.NotesRepo.UpdateNoteText(ctx, noteID, text)
	if err != nil {
		return nil, err
	}

	middleware.TrackNoteOperation("update")
	svc.notifyParticipants(updated, model.NoteEvent{
		Event: model.EventNoteUpdated,
		Note:  updated,
	})

	return updated, nil
}

// DeleteNote removes a note permanently. Only the creator may delete.
func (svc *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return err
	}

	if !note.CreatedByUser(userID) {
		return model.ErrNotCreator
	}

	if err := svc.NotesRepo.DeleteNote(ctx, noteID); err != nil {
		return err
	}

	middleware.TrackNoteOperation("delete")
	svc.notifyParticipants(note, model.NoteEvent{
		Event:   model.EventNoteDeleted,
		Deleted: &model.DeletedNoteData{ID: noteID},
	})

	return nil
}

func (svc *NotesService) notifyParticipants(note *model.Note, event model.NoteEvent) {
	if svc.Notifier == nil || len(note.Participants) != 2 {
		return
	}
	svc.Notifier.NotifyPair(note.Participants[0], note.Participants[1], event)
}
