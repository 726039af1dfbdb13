package services

import (
	"strings"
	"sync"
	"time"

	"main/middleware"
	"main/model"

	"github.com/mileusna/useragent"
)

// Pusher is one user's live push channel. The websocket handler wraps the
// underlying connection behind this so the registry never touches transport
// types directly.
type Pusher interface {
	Push(event model.NoteEvent) error
	Close() error
}

type PresenceEntry struct {
	Pusher      Pusher
	Device      string
	ConnectedAt time.Time
}

// PresenceRegistry maps user ids to live connections. It is owned by the
// process and injected into whatever needs to push events; one connection
// per user, a new registration replaces the previous one.
type PresenceRegistry struct {
	mu    sync.RWMutex
	conns map[string]*PresenceEntry
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		conns: make(map[string]*PresenceEntry),
	}
}

// Register adds a live connection for userID, closing any previous one.
func (r *PresenceRegistry) Register(userID string, p Pusher, rawUserAgent string) {
	r.mu.Lock()
	previous := r.conns[userID]
	r.conns[userID] = &PresenceEntry{
		Pusher:      p,
		Device:      DeviceLabel(rawUserAgent),
		ConnectedAt: time.Now(),
	}
	r.mu.Unlock()

	if previous != nil {
		previous.Pusher.Close()
	} else {
		middleware.WebsocketConnections.Inc()
	}
}

// Unregister removes the connection for userID, but only if p is still the
// registered one. A replaced connection unregistering late is a no-op.
func (r *PresenceRegistry) Unregister(userID string, p Pusher) {
	r.mu.Lock()
	entry, ok := r.conns[userID]
	if ok && entry.Pusher == p {
		delete(r.conns, userID)
	} else {
		ok = false
	}
	r.mu.Unlock()

	if ok {
		middleware.WebsocketConnections.Dec()
	}
}

// Lookup returns the live connection for userID, if any.
func (r *PresenceRegistry) Lookup(userID string) (Pusher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.conns[userID]
	if !ok {
		return nil, false
	}
	return entry.Pusher, true
}

// IsOnline reports whether userID has a live connection.
func (r *PresenceRegistry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.conns[userID]
	return ok
}

// Device returns the device label recorded at registration time.
func (r *PresenceRegistry) Device(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.conns[userID]; ok {
		return entry.Device
	}
	return ""
}

// ConnectionCount returns the number of live connections.
func (r *PresenceRegistry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// DeviceLabel condenses a User-Agent string into a short device label.
func DeviceLabel(rawUserAgent string) string {
	if rawUserAgent == "" {
		return "unknown"
	}

	ua := useragent.Parse(rawUserAgent)
	label := strings.TrimSpace(ua.Name + " " + ua.OS)
	if label == "" {
		return "unknown"
	}
	return label
}
