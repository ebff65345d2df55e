package handlers

import (
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// WishlistHandlers contains all wishlist-related HTTP handlers
type WishlistHandlers struct {
	wishlistService *services.WishlistService
	logger          *logging.ChanneledLogger
}

// NewWishlistHandlers creates wishlist handlers with injected dependencies
func NewWishlistHandlers(wishlistService *services.WishlistService, logger *logging.ChanneledLogger) *WishlistHandlers {
	return &WishlistHandlers{wishlistService: wishlistService, logger: logger}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandlers) GetWishlist(c *gin.Context) {
	respondOK(c, gin.H{
		"items": h.wishlistService.Items(),
		"count": h.wishlistService.Count(),
	})
}

// PostItem handles POST /api/v1/wishlist/items. Re-adding an item is a 409;
// the UI toggles on that.
func (h *WishlistHandlers) PostItem(c *gin.Context) {
	var item commerce.WishlistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid wishlist item"})
		return
	}
	if item.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "item id is required"})
		return
	}

	if err := h.wishlistService.Add(item); err != nil {
		respondError(c, err)
		return
	}
	h.GetWishlist(c)
}

// DeleteItem handles DELETE /api/v1/wishlist/items/:id
func (h *WishlistHandlers) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.wishlistService.Remove(id); err != nil {
		respondError(c, err)
		return
	}
	h.GetWishlist(c)
}

// GetContains handles GET /api/v1/wishlist/items/:id - membership probe for
// rendering the heart icon
func (h *WishlistHandlers) GetContains(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	respondOK(c, gin.H{"present": h.wishlistService.Contains(id)})
}

// PostReconcile handles POST /api/v1/wishlist/reconcile
func (h *WishlistHandlers) PostReconcile(c *gin.Context) {
	var remote []commerce.WishlistItem
	if err := c.ShouldBindJSON(&remote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid wishlist snapshot"})
		return
	}
	if err := h.wishlistService.ReconcileWithRemote(remote); err != nil {
		respondError(c, err)
		return
	}
	h.GetWishlist(c)
}
