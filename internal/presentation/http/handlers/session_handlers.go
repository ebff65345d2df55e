package handlers

import (
	"net/http"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/session"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// SessionHandlers contains all auth and session-related HTTP handlers
type SessionHandlers struct {
	sessionService *services.SessionService
	logger         *logging.ChanneledLogger
}

// LoginRequest carries the token minted by the remote backend plus the
// profile snapshot returned alongside it.
type LoginRequest struct {
	Token   string           `json:"token" binding:"required"`
	Profile *session.Profile `json:"profile,omitempty"`
}

// StatusResponse is the session read surface for the UI shell. The raw token
// never crosses the facade.
type StatusResponse struct {
	Status        session.Status   `json:"status"`
	Authenticated bool             `json:"authenticated"`
	Profile       *session.Profile `json:"profile,omitempty"`
}

// NewSessionHandlers creates session handlers with injected dependencies
func NewSessionHandlers(sessionService *services.SessionService, logger *logging.ChanneledLogger) *SessionHandlers {
	return &SessionHandlers{
		sessionService: sessionService,
		logger:         logger,
	}
}

// GetStatus handles GET /api/v1/session/status
func (h *SessionHandlers) GetStatus(c *gin.Context) {
	current := h.sessionService.Current()
	respondOK(c, StatusResponse{
		Status:        current.Status,
		Authenticated: current.Authenticated(),
		Profile:       current.User,
	})
}

// PostLogin handles POST /api/v1/session/login
func (h *SessionHandlers) PostLogin(c *gin.Context) {
	start := time.Now()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "token is required"})
		return
	}

	if err := h.sessionService.Login(req.Token, req.Profile); err != nil {
		h.logger.Auth().Error("Login failed", "error", err.Error(), "duration", time.Since(start))
		respondError(c, err)
		return
	}

	current := h.sessionService.Current()
	respondOK(c, StatusResponse{
		Status:        current.Status,
		Authenticated: true,
		Profile:       current.User,
	})
}

// PostLogout handles POST /api/v1/session/logout
func (h *SessionHandlers) PostLogout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context()); err != nil {
		// Local state is anonymous by now; report the cleanup failure anyway.
		respondError(c, err)
		return
	}
	respondOK(c, StatusResponse{Status: session.StatusAnonymous, Authenticated: false})
}

// PostRefreshProfile handles POST /api/v1/session/profile/refresh
func (h *SessionHandlers) PostRefreshProfile(c *gin.Context) {
	profile, err := h.sessionService.RefreshProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile)
}
