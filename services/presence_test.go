package services

import (
	"errors"
	"sync"
	"testing"

	"main/model"
)

type fakePusher struct {
	mu      sync.Mutex
	pushed  []model.NoteEvent
	closed  bool
	pushErr error
}

func (f *fakePusher) Push(event model.NoteEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, event)
	return nil
}

func (f *fakePusher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakePusher) events() []model.NoteEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.NoteEvent, len(f.pushed))
	copy(out, f.pushed)
	return out
}

func (f *fakePusher) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewPresenceRegistry()
	pusher := &fakePusher{}

	if _, ok := registry.Lookup("user-a"); ok {
		t.Fatal("Lookup on empty registry should miss")
	}

	registry.Register("user-a", pusher, "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/120.0 Safari/537.36")

	got, ok := registry.Lookup("user-a")
	if !ok || got != Pusher(pusher) {
		t.Fatal("Lookup should return the registered connection")
	}
	if !registry.IsOnline("user-a") {
		t.Error("IsOnline should report true for a registered user")
	}
	if registry.ConnectionCount() != 1 {
		t.Errorf("Expected 1 connection, got %d", registry.ConnectionCount())
	}
	if registry.Device("user-a") == "" || registry.Device("user-a") == "unknown" {
		t.Errorf("Expected parsed device label, got %q", registry.Device("user-a"))
	}
}

func TestRegistryReplacesPreviousConnection(t *testing.T) {
	registry := NewPresenceRegistry()
	first := &fakePusher{}
	second := &fakePusher{}

	registry.Register("user-a", first, "")
	registry.Register("user-a", second, "")

	if !first.isClosed() {
		t.Error("Replaced connection should be closed")
	}

	got, ok := registry.Lookup("user-a")
	if !ok || got != Pusher(second) {
		t.Fatal("Lookup should return the newest connection")
	}

	// The replaced connection unregistering late must not evict the new one
	registry.Unregister("user-a", first)
	if !registry.IsOnline("user-a") {
		t.Error("Stale unregister evicted the live connection")
	}

	registry.Unregister("user-a", second)
	if registry.IsOnline("user-a") {
		t.Error("User still online after unregister")
	}
	if registry.ConnectionCount() != 0 {
		t.Errorf("Expected 0 connections, got %d", registry.ConnectionCount())
	}
}

func TestNotifyPairDeliversToConnected(t *testing.T) {
	registry := NewPresenceRegistry()
	notifier := NewPushNotifier(registry)

	pusherA := &fakePusher{}
	pusherB := &fakePusher{}
	registry.Register("user-a", pusherA, "")
	registry.Register("user-b", pusherB, "")

	event := model.NoteEvent{
		Event: model.EventNoteAdded,
		Note:  &model.Note{ID: "n1", Participants: []string{"user-a", "user-b"}, Text: "hello"},
	}
	notifier.NotifyPair("user-a", "user-b", event)

	for name, pusher := range map[string]*fakePusher{"user-a": pusherA, "user-b": pusherB} {
		events := pusher.events()
		if len(events) != 1 {
			t.Fatalf("%s: expected 1 event, got %d", name, len(events))
		}
		if events[0].Event != model.EventNoteAdded || events[0].Note.ID != "n1" {
			t.Errorf("%s: unexpected event %+v", name, events[0])
		}
	}
}

func TestNotifyPairSilentWhenDisconnected(t *testing.T) {
	registry := NewPresenceRegistry()
	notifier := NewPushNotifier(registry)

	pusherA := &fakePusher{}
	registry.Register("user-a", pusherA, "")

	// user-b has no connection; this must not error or panic
	notifier.NotifyPair("user-a", "user-b", model.NoteEvent{Event: model.EventNoteUpdated})

	if len(pusherA.events()) != 1 {
		t.Error("Connected participant should still receive the event")
	}

	// Neither side connected
	notifier.NotifyPair("user-x", "user-y", model.NoteEvent{Event: model.EventNoteDeleted})
}

func TestNotifyPairSwallowsTransportFailure(t *testing.T) {
	registry := NewPresenceRegistry()
	notifier := NewPushNotifier(registry)

	broken := &fakePusher{pushErr: errors.New("connection reset")}
	healthy := &fakePusher{}
	registry.Register("user-a", broken, "")
	registry.Register("user-b", healthy, "")

	notifier.NotifyPair("user-a", "user-b",
		model.NoteEvent{Event: model.EventNoteAdded, Note: &model.Note{ID: "n1"}})

	if len(healthy.events()) != 1 {
		t.Error("Failure on one side must not block the other")
	}
}

func TestNotifyPairSameUserPushesOnce(t *testing.T) {
	registry := NewPresenceRegistry()
	notifier := NewPushNotifier(registry)

	pusher := &fakePusher{}
	registry.Register("user-a", pusher, "")

	notifier.NotifyPair("user-a", "user-a", model.NoteEvent{Event: model.EventNoteAdded})

	if len(pusher.events()) != 1 {
		t.Errorf("Expected a single push for a self-pair, got %d", len(pusher.events()))
	}
}

func TestDeviceLabel(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{name: "Empty", ua: "", expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeviceLabel(tt.ua); got != tt.expected {
				t.Errorf("DeviceLabel(%q) = %q, want %q", tt.ua, got, tt.expected)
			}
		})
	}
}
