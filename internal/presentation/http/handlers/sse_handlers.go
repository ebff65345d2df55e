package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/messaging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// SSEHandlers streams state-change events to the UI shell
type SSEHandlers struct {
	broadcaster *messaging.Broadcaster
	readyGate   *messaging.Gate
	logger      *logging.ChanneledLogger
}

// NewSSEHandlers creates SSE handlers with injected dependencies
func NewSSEHandlers(broadcaster *messaging.Broadcaster, readyGate *messaging.Gate, logger *logging.ChanneledLogger) *SSEHandlers {
	return &SSEHandlers{
		broadcaster: broadcaster,
		readyGate:   readyGate,
		logger:      logger,
	}
}

// GetEvents handles GET /api/v1/events - establishes the Server-Sent Events
// connection the shell listens on for cart, wishlist, address, and session
// changes.
func (h *SSEHandlers) GetEvents(c *gin.Context) {
	sub, ok := h.broadcaster.Subscribe()
	if !ok {
		h.logger.SSE().Warn("SSE subscriber limit reached",
			"maxSubscribers", config.MaxEventSubscribers)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "event subscriber limit reached",
		})
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, canFlush := c.Writer.(http.Flusher)
	if !canFlush {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "streaming unsupported"})
		return
	}

	// Tell the client whether bootstrap already finished so a late
	// subscriber does not wait for a ready event that fired before it
	// connected.
	fmt.Fprintf(c.Writer, "data: {\"event\":\"connected\",\"payload\":{\"ready\":%t,\"timestamp\":%q}}\n\n",
		h.readyGate.Released(), time.Now().Format(time.RFC3339))
	flusher.Flush()

	clientCtx := c.Request.Context()
	connectionStart := time.Now()

	heartbeat := time.NewTicker(time.Duration(config.SSEHeartbeatIntervalSeconds) * time.Second)
	defer heartbeat.Stop()

	h.logger.SSE().Info("SSE client connected",
		"subscribers", h.broadcaster.SubscriberCount())

	for {
		select {
		case <-clientCtx.Done():
			h.logger.SSE().Info("SSE client disconnected",
				"connectionDuration", time.Since(connectionStart))
			return

		case msg, open := <-sub.C:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", msg)
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
