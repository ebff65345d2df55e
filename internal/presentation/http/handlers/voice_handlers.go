package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Voice clips larger than this are rejected outright.
const maxClipBytes = 8 << 20

// voiceUpgrader accepts any origin; the facade binds to loopback and CORS
// does not apply to websocket upgrades.
var voiceUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 4 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// VoiceHandlers contains the voice search websocket handler
type VoiceHandlers struct {
	voiceService *services.VoiceService
	logger       *logging.ChanneledLogger
}

// NewVoiceHandlers creates voice handlers with injected dependencies
func NewVoiceHandlers(voiceService *services.VoiceService, logger *logging.ChanneledLogger) *VoiceHandlers {
	return &VoiceHandlers{voiceService: voiceService, logger: logger}
}

// GetTranscribe handles GET /api/v1/voice/transcribe. The shell upgrades to
// a websocket, streams binary audio frames, then sends the text message
// "done". The engine buffers the clip, transcribes it, and replies with a
// single JSON result. Closing the socket at any point cancels the
// transcription.
func (h *VoiceHandlers) GetTranscribe(c *gin.Context) {
	if !h.voiceService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": services.ErrVoiceUnavailable.Error()})
		return
	}

	conn, err := voiceUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Media().Error("Voice websocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()

	var clip bytes.Buffer
	clipDeadline := time.Now().Add(time.Duration(config.VoiceMaxClipSecs) * time.Second)
	conn.SetReadDeadline(clipDeadline)

collect:
	for {
		messageType, frame, err := conn.ReadMessage()
		if err != nil {
			h.logger.Media().Debug("Voice client went away during capture", "error", err.Error())
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			if clip.Len()+len(frame) > maxClipBytes {
				conn.WriteJSON(gin.H{"success": false, "error": "audio clip too large"})
				return
			}
			clip.Write(frame)
		case websocket.TextMessage:
			if string(frame) == "done" {
				break collect
			}
		}
	}

	if clip.Len() == 0 {
		conn.WriteJSON(gin.H{"success": false, "error": "empty audio clip"})
		return
	}

	// A socket close while the transcript is in flight cancels the upstream
	// call.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		conn.SetReadDeadline(time.Time{})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	start := time.Now()
	text, err := h.voiceService.Transcribe(ctx, bytes.NewReader(clip.Bytes()))
	if err != nil {
		h.logger.Media().Error("Voice transcription failed",
			"error", err.Error(), "clipBytes", clip.Len(), "duration", time.Since(start))
		conn.WriteJSON(gin.H{"success": false, "error": err.Error()})
		return
	}

	h.logger.Media().Info("Voice transcription complete",
		"clipBytes", clip.Len(), "chars", len(text), "duration", time.Since(start))
	conn.WriteJSON(gin.H{"success": true, "data": gin.H{"text": text}})
}
