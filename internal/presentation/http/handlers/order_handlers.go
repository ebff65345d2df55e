package handlers

import (
	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// OrderHandlers contains order history HTTP handlers
type OrderHandlers struct {
	orderService *services.OrderService
	logger       *logging.ChanneledLogger
}

// NewOrderHandlers creates order handlers with injected dependencies
func NewOrderHandlers(orderService *services.OrderService, logger *logging.ChanneledLogger) *OrderHandlers {
	return &OrderHandlers{orderService: orderService, logger: logger}
}

// GetMine handles GET /api/v1/orders/mine
func (h *OrderHandlers) GetMine(c *gin.Context) {
	orders, err := h.orderService.Mine(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, orders)
}
