package model

// Push event names carried over the websocket channel.
const (
	EventNoteAdded   = "notes:added"
	EventNoteUpdated = "notes:updated"
	EventNoteDeleted = "notes:deleted"
)

// NoteEvent is one frame on the push channel. Note is set for added/updated
// events, Deleted for deleted events.
type NoteEvent struct {
	Event   string           `json:"event"`
	Note    *Note            `json:"note,omitempty"`
	Deleted *DeletedNoteData `json:"deleted,omitempty"`
}

// DeletedNoteData is the minimal payload for a deleted note.
type DeletedNoteData struct {
	ID string `json:"id"`
}
