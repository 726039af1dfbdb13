package services

import (
	"log"

	"main/middleware"
	"main/model"
)

// PushNotifier fans a note event out to whichever of the two participants
// currently hold a live connection. A missing connection is silent and a
// transport failure is logged and swallowed; the HTTP response for the
// originating write never depends on the outcome.
type PushNotifier struct {
	Registry *PresenceRegistry
}

func NewPushNotifier(registry *PresenceRegistry) *PushNotifier {
	return &PushNotifier{Registry: registry}
}

func (n *PushNotifier) NotifyPair(userA, userB string, event model.NoteEvent) {
	n.pushTo(userA, event)
	if userB != userA {
		n.pushTo(userB, event)
	}
}

func (n *PushNotifier) pushTo(userID string, event model.NoteEvent) {
	pusher, ok := n.Registry.Lookup(userID)
	if !ok {
		middleware.TrackPushEvent(event.Event, "skipped")
		return
	}

	if err := pusher.Push(event); err != nil {
		log.Printf("Failed to push %s to user %s: %v", event.Event, userID, err)
		middleware.TrackPushEvent(event.Event, "failed")
		return
	}

	middleware.TrackPushEvent(event.Event, "delivered")
}
