package handlers

import (
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// CatalogHandlers contains product catalog HTTP handlers
type CatalogHandlers struct {
	catalogService *services.CatalogService
	logger         *logging.ChanneledLogger
}

// NewCatalogHandlers creates catalog handlers with injected dependencies
func NewCatalogHandlers(catalogService *services.CatalogService, logger *logging.ChanneledLogger) *CatalogHandlers {
	return &CatalogHandlers{catalogService: catalogService, logger: logger}
}

// GetProducts handles GET /api/v1/catalog/products
func (h *CatalogHandlers) GetProducts(c *gin.Context) {
	products, err := h.catalogService.Products(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}

// GetProductsByCategory handles GET /api/v1/catalog/categories/:id/products
func (h *CatalogHandlers) GetProductsByCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	products, err := h.catalogService.ProductsByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, products)
}

// GetCategory handles GET /api/v1/catalog/categories/:id
func (h *CatalogHandlers) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.catalogService.Category(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

// GetThumbnail handles GET /api/v1/catalog/thumbnail?src=... and serves the
// cached webp file directly.
func (h *CatalogHandlers) GetThumbnail(c *gin.Context) {
	src := c.Query("src")
	if src == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "src query parameter is required"})
		return
	}

	path, err := h.catalogService.Thumbnail(src)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}

// PostInvalidate handles POST /api/v1/catalog/invalidate
func (h *CatalogHandlers) PostInvalidate(c *gin.Context) {
	h.catalogService.Invalidate()
	respondOK(c, gin.H{"invalidated": true})
}
