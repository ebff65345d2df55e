// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"errors"
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
	"github.com/gin-gonic/gin"
)

// respondOK writes the facade success envelope. The shape mirrors the remote
// API envelope so the UI shell decodes both the same way.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError maps the domain error taxonomy onto facade status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var remoteErr *gateway.RemoteError
	var storageErr *store.StorageError

	switch {
	case errors.Is(err, commerce.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, commerce.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrVoiceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, services.ErrPinNotSet):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrPinTooShort):
		status = http.StatusBadRequest
	case errors.As(err, &remoteErr):
		status = remoteStatus(remoteErr)
	case errors.As(err, &storageErr):
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func remoteStatus(re *gateway.RemoteError) int {
	switch re.Kind {
	case gateway.KindNetwork:
		return http.StatusBadGateway
	case gateway.KindTimeout:
		return http.StatusGatewayTimeout
	case gateway.KindUnauthorized:
		return http.StatusUnauthorized
	case gateway.KindValidation:
		return http.StatusUnprocessableEntity
	case gateway.KindServer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
