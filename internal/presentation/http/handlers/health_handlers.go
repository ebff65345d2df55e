package handlers

import (
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/container"
	"github.com/gin-gonic/gin"
)

// HealthHandlers exposes the readiness surface the UI shell polls during the
// loading screen.
type HealthHandlers struct {
	container *container.Container
}

// NewHealthHandlers creates health handlers
func NewHealthHandlers(container *container.Container) *HealthHandlers {
	return &HealthHandlers{container: container}
}

// GetHealth handles GET /health - liveness, always 200 once the facade is up
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReady handles GET /ready - 200 once the bootstrap sequence has
// released the gate, 503 before that
func (h *HealthHandlers) GetReady(c *gin.Context) {
	if !h.container.ReadyGate.Released() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ready":  false,
			"status": string(h.container.SessionService.Current().Status),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ready":       true,
		"status":      string(h.container.SessionService.Current().Status),
		"storeSynced": h.container.Store.Synced(),
	})
}
