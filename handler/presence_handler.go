package handler

import (
	"log"
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type PresenceHandler struct {
	Registry *services.PresenceRegistry
	Cache    *services.PresenceCache // optional
}

func NewPresenceHandler(registry *services.PresenceRegistry, cache *services.PresenceCache) *PresenceHandler {
	return &PresenceHandler{Registry: registry, Cache: cache}
}

// GetPresence answers whether :userId holds a live connection right now,
// falling back to the Redis snapshot for last-seen information.
func (h *PresenceHandler) GetPresence(c *gin.Context) {
	userID := c.Param("userId")

	if h.Registry.IsOnline(userID) {
		utils.Success(c, services.PresenceStatus{
			Online:   true,
			Device:   h.Registry.Device(userID),
			LastSeen: time.Now(),
		})
		return
	}

	status := services.PresenceStatus{Online: false}
	if h.Cache != nil {
		cached, err := h.Cache.GetStatus(c.Request.Context(), userID)
		if err != nil {
			log.Printf("getPresence error: %v", err)
			utils.InternalError(c, "Failed to fetch presence")
			return
		}
		if cached != nil {
			status.Device = cached.Device
			status.LastSeen = cached.LastSeen
		}
	}

	utils.Success(c, status)
}
