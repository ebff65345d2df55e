package handlers

import (
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// LockHandlers contains the app-lock PIN HTTP handlers
type LockHandlers struct {
	lockService *services.LockService
	logger      *logging.ChanneledLogger
}

// PinRequest carries a PIN for set or verify calls
type PinRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// NewLockHandlers creates lock handlers with injected dependencies
func NewLockHandlers(lockService *services.LockService, logger *logging.ChanneledLogger) *LockHandlers {
	return &LockHandlers{lockService: lockService, logger: logger}
}

// GetStatus handles GET /api/v1/lock
func (h *LockHandlers) GetStatus(c *gin.Context) {
	respondOK(c, gin.H{"enabled": h.lockService.Enabled()})
}

// PostPin handles POST /api/v1/lock/pin
func (h *LockHandlers) PostPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "pin is required"})
		return
	}
	if err := h.lockService.Set(req.Pin); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"enabled": true})
}

// PostVerify handles POST /api/v1/lock/verify
func (h *LockHandlers) PostVerify(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "pin is required"})
		return
	}
	ok, err := h.lockService.Verify(req.Pin)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"valid": ok})
}

// DeletePin handles DELETE /api/v1/lock/pin
func (h *LockHandlers) DeletePin(c *gin.Context) {
	if err := h.lockService.Clear(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"enabled": false})
}
