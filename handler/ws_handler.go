package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from a different origin during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	Registry *services.PresenceRegistry
	Presence *services.PresenceCache // optional, nil when Redis is not configured
}

func NewWSHandler(registry *services.PresenceRegistry, presence *services.PresenceCache) *WSHandler {
	return &WSHandler{Registry: registry, Presence: presence}
}

// Connect upgrades the request to a websocket, registers the authenticated
// user in the presence registry, and keeps the connection open until the
// peer goes away. The server only writes on this connection; inbound frames
// are drained and dropped.
func (h *WSHandler) Connect(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for user %s: %v", userID, err)
		return
	}

	pusher := &wsPusher{conn: conn}
	rawUA := c.Request.UserAgent()
	h.Registry.Register(userID.(string), pusher, rawUA)

	if h.Presence != nil {
		if err := h.Presence.MarkOnline(c.Request.Context(), userID.(string), services.DeviceLabel(rawUA)); err != nil {
			log.Printf("Failed to mark user %s online: %v", userID, err)
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Registry.Unregister(userID.(string), pusher)

	if h.Presence != nil {
		// Request context is gone once the peer disconnects
		if err := h.Presence.MarkOffline(context.Background(), userID.(string)); err != nil {
			log.Printf("Failed to mark user %s offline: %v", userID, err)
		}
	}
}

// wsPusher adapts a websocket connection to the services.Pusher interface.
// The mutex serializes writes; gorilla connections support one concurrent
// writer.
type wsPusher struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (p *wsPusher) Push(event model.NoteEvent) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(event)
}

func (p *wsPusher) Close() error {
	return p.conn.Close()
}
