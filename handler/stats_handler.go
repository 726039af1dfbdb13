package handler

import (
	"time"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Registry  *services.PresenceRegistry
	startedAt time.Time
}

func NewStatsHandler(registry *services.PresenceRegistry) *StatsHandler {
	return &StatsHandler{
		Registry:  registry,
		startedAt: time.Now(),
	}
}

// GetSystemStats reports process and host health for dashboards.
func (h *StatsHandler) GetSystemStats(c *gin.Context) {
	utils.Success(c, gin.H{
		"cpu_usage_percent":    utils.GetCPUUsage(),
		"memory_usage_percent": utils.GetMemoryUsage(),
		"live_connections":     h.Registry.ConnectionCount(),
		"uptime":               time.Since(h.startedAt).Round(time.Second).String(),
	})
}
