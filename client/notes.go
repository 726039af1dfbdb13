package client

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	"main/model"

	"github.com/gorilla/websocket"
)

// NoteClient mirrors the shared-note list for one counterpart. Local state
// is reconciled from two sources: responses to this client's own REST calls
// and pushed events for changes made by either participant. The server
// stays the single source of truth; every reconciliation is a full-record
// replace, last write observed wins.
type NoteClient struct {
	cfg Config

	mu       sync.Mutex
	state    State
	friendID string
	notes    []model.Note

	conn *websocket.Conn
	done chan struct{}
}

func NewNoteClient(cfg Config) *NoteClient {
	return &NoteClient{cfg: cfg, state: StateIdle}
}

// State returns the store's lifecycle state.
func (n *NoteClient) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Notes returns a snapshot of the local list, creation order ascending.
func (n *NoteClient) Notes() []model.Note {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]model.Note, len(n.notes))
	copy(out, n.notes)
	return out
}

// Load fetches the full note list for friendID and replaces local state.
func (n *NoteClient) Load(ctx context.Context, friendID string) error {
	n.mu.Lock()
	n.state = StateLoading
	n.friendID = friendID
	n.mu.Unlock()

	var notes []model.Note
	err := doJSON(ctx, n.cfg, http.MethodGet, "/api/notes/"+friendID, nil, &notes)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		n.state = StateIdle
		n.cfg.notifyError("Failed to fetch notes")
		return err
	}

	n.notes = notes
	n.state = StateReady
	return nil
}

// Add creates a note shared with friendID and upserts the response.
func (n *NoteClient) Add(ctx context.Context, friendID, text string) (*model.Note, error) {
	var note model.Note
	err := doJSON(ctx, n.cfg, http.MethodPost, "/api/notes/"+friendID,
		map[string]string{"text": text}, &note)
	if err != nil {
		n.cfg.notifyError("Failed to add note")
		return nil, err
	}

	n.mu.Lock()
	n.upsertLocked(note)
	n.state = StateReady
	n.mu.Unlock()

	return &note, nil
}

// Update replaces the text of a note and upserts the response.
func (n *NoteClient) Update(ctx context.Context, noteID, text string) (*model.Note, error) {
	var note model.Note
	err := doJSON(ctx, n.cfg, http.MethodPatch, "/api/notes/"+noteID,
		map[string]string{"text": text}, &note)
	if err != nil {
		n.cfg.notifyError("Failed to update note")
		return nil, err
	}

	n.mu.Lock()
	n.upsertLocked(note)
	n.state = StateReady
	n.mu.Unlock()

	return &note, nil
}

// Delete removes a note and drops it from local state.
func (n *NoteClient) Delete(ctx context.Context, noteID string) error {
	if err := doJSON(ctx, n.cfg, http.MethodDelete, "/api/notes/"+noteID, nil, nil); err != nil {
		n.cfg.notifyError("Failed to delete note")
		return err
	}

	n.mu.Lock()
	n.removeLocked(noteID)
	n.state = StateReady
	n.mu.Unlock()

	return nil
}

// Subscribe opens the push channel for the currently viewed counterpart.
// Subscribe and Unsubscribe must be paired per viewed counterpart so stale
// handlers don't accumulate across navigations.
func (n *NoteClient) Subscribe(friendID string) error {
	n.Unsubscribe()

	wsURL := strings.TrimRight(n.cfg.BaseURL, "/") + "/api/ws"
	wsURL = strings.Replace(wsURL, "http", "ws", 1)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+n.cfg.Token)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		n.cfg.notifyError("Failed to subscribe to note updates")
		return err
	}

	done := make(chan struct{})

	n.mu.Lock()
	n.friendID = friendID
	n.conn = conn
	n.done = done
	n.mu.Unlock()

	go n.readLoop(conn, done)
	return nil
}

// Unsubscribe tears down the push channel. Safe to call when not
// subscribed.
func (n *NoteClient) Unsubscribe() {
	n.mu.Lock()
	conn := n.conn
	done := n.done
	n.conn = nil
	n.done = nil
	n.mu.Unlock()

	if conn == nil {
		return
	}

	conn.Close()
	<-done
}

func (n *NoteClient) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		var event model.NoteEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}
		n.applyEvent(event)
	}
}

// applyEvent reconciles one pushed event into the local list: upsert by id
// on added/updated, remove by id on deleted. Events for conversations other
// than the viewed one are ignored.
func (n *NoteClient) applyEvent(event model.NoteEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch event.Event {
	case model.EventNoteAdded, model.EventNoteUpdated:
		if event.Note == nil || !n.matchesViewedPairLocked(event.Note) {
			return
		}
		n.upsertLocked(*event.Note)
	case model.EventNoteDeleted:
		if event.Deleted == nil {
			return
		}
		n.removeLocked(event.Deleted.ID)
	}
}

func (n *NoteClient) matchesViewedPairLocked(note *model.Note) bool {
	if len(note.Participants) != 2 {
		return false
	}

	hasSelf, hasFriend := false, false
	for _, id := range note.Participants {
		if id == n.cfg.UserID {
			hasSelf = true
		}
		if id == n.friendID {
			hasFriend = true
		}
	}
	return hasSelf && hasFriend
}

func (n *NoteClient) upsertLocked(note model.Note) {
	for i := range n.notes {
		if n.notes[i].ID == note.ID {
			n.notes[i] = note
			return
		}
	}

	n.notes = append(n.notes, note)
	sort.SliceStable(n.notes, func(i, j int) bool {
		return n.notes[i].CreatedAt.Before(n.notes[j].CreatedAt)
	})
}

func (n *NoteClient) removeLocked(noteID string) {
	for i := range n.notes {
		if n.notes[i].ID == noteID {
			n.notes = append(n.notes[:i], n.notes[i+1:]...)
			return
		}
	}
}
