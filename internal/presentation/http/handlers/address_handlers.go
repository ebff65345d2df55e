package handlers

import (
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// AddressHandlers contains all address book HTTP handlers
type AddressHandlers struct {
	addressService *services.AddressService
	logger         *logging.ChanneledLogger
}

// NewAddressHandlers creates address handlers with injected dependencies
func NewAddressHandlers(addressService *services.AddressService, logger *logging.ChanneledLogger) *AddressHandlers {
	return &AddressHandlers{addressService: addressService, logger: logger}
}

// GetAddresses handles GET /api/v1/addresses
func (h *AddressHandlers) GetAddresses(c *gin.Context) {
	respondOK(c, gin.H{"items": h.addressService.Items()})
}

// GetDefault handles GET /api/v1/addresses/default
func (h *AddressHandlers) GetDefault(c *gin.Context) {
	addr, ok := h.addressService.Default()
	if !ok {
		respondError(c, commerce.ErrNotFound)
		return
	}
	respondOK(c, addr)
}

// PostAddress handles POST /api/v1/addresses
func (h *AddressHandlers) PostAddress(c *gin.Context) {
	var addr commerce.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid address"})
		return
	}
	if addr.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "address id is required"})
		return
	}

	if err := h.addressService.Add(addr); err != nil {
		respondError(c, err)
		return
	}
	h.GetAddresses(c)
}

// PatchAddress handles PATCH /api/v1/addresses/:id - partial update, only
// fields present in the body change
func (h *AddressHandlers) PatchAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var patch commerce.AddressPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid address patch"})
		return
	}

	if err := h.addressService.Update(id, patch); err != nil {
		respondError(c, err)
		return
	}
	h.GetAddresses(c)
}

// DeleteAddress handles DELETE /api/v1/addresses/:id
func (h *AddressHandlers) DeleteAddress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.addressService.Remove(id); err != nil {
		respondError(c, err)
		return
	}
	h.GetAddresses(c)
}

// PostDefault handles POST /api/v1/addresses/:id/default
func (h *AddressHandlers) PostDefault(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.addressService.SetDefault(id); err != nil {
		respondError(c, err)
		return
	}
	h.GetAddresses(c)
}

// PostReconcile handles POST /api/v1/addresses/reconcile
func (h *AddressHandlers) PostReconcile(c *gin.Context) {
	var remote []commerce.Address
	if err := c.ShouldBindJSON(&remote); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid address snapshot"})
		return
	}
	if err := h.addressService.ReconcileWithRemote(remote); err != nil {
		respondError(c, err)
		return
	}
	h.GetAddresses(c)
}
