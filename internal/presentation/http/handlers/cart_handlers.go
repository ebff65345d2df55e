package handlers

import (
	"net/http"
	"strconv"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// CartHandlers contains all cart-related HTTP handlers
type CartHandlers struct {
	cartService *services.CartService
	logger      *logging.ChanneledLogger
}

// CartSnapshot is the full cart read surface
type CartSnapshot struct {
	Items []commerce.CartItem `json:"items"`
	Count int                 `json:"count"`
	Total float64             `json:"total"`
}

// QuantityRequest carries an absolute quantity for a cart line
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// NewCartHandlers creates cart handlers with injected dependencies
func NewCartHandlers(cartService *services.CartService, logger *logging.ChanneledLogger) *CartHandlers {
	return &CartHandlers{cartService: cartService, logger: logger}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandlers) GetCart(c *gin.Context) {
	respondOK(c, CartSnapshot{
		Items: h.cartService.Items(),
		Count: h.cartService.Count(),
		Total: h.cartService.Total(),
	})
}

// PostItem handles POST /api/v1/cart/items
func (h *CartHandlers) PostItem(c *gin.Context) {
	var item commerce.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid cart item"})
		return
	}
	if item.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "item id is required"})
		return
	}

	if err := h.cartService.Add(item); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

// DeleteItem handles DELETE /api/v1/cart/items/:id
func (h *CartHandlers) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cartService.Remove(id); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

// PutQuantity handles PUT /api/v1/cart/items/:id/quantity
func (h *CartHandlers) PutQuantity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid quantity"})
		return
	}

	if err := h.cartService.SetQuantity(id, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

// PostReconcile handles POST /api/v1/cart/reconcile - wholesale replace from
// a server snapshot
func (h *CartHandlers) PostReconcile(c *gin.Context) {
	var remote []commerce.CartItem
	if err := c.ShouldBindJSON(&remote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid cart snapshot"})
		return
	}
	if err := h.cartService.ReconcileWithRemote(remote); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

// pathID parses the :id route segment; writes the error response itself on
// failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return 0, false
	}
	return id, true
}
