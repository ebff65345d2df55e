package services

import (
	"context"
	"net/http"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
)

// OrderService reads the user's placed orders. Orders are read-only on the
// client: every call goes to the backend, nothing is persisted locally.
type OrderService struct {
	gateway *gateway.Gateway
	token   func() string
	logger  *logging.ChanneledLogger
}

// NewOrderService creates the order reader.
func NewOrderService(gw *gateway.Gateway, token func() string, logger *logging.ChanneledLogger) *OrderService {
	return &OrderService{gateway: gw, token: token, logger: logger}
}

// Mine fetches GET /orders/mine. Requires an authenticated session.
func (s *OrderService) Mine(ctx context.Context) ([]commerce.Order, error) {
	token := s.token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	start := time.Now()
	var orders []commerce.Order
	if err := s.gateway.RequestInto(ctx, http.MethodGet, "/orders/mine", gateway.Options{Token: token}, &orders); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Sync().Info("Orders fetched", "count", len(orders), "duration", time.Since(start))
	}
	return orders, nil
}
