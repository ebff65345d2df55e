package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/media"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
)

// CatalogService reads products and categories through the gateway. The
// backend serves the full product list; category filtering happens here,
// client-side. A short-lived in-memory cache keeps repeat screen loads off
// the network.
type CatalogService struct {
	gateway *gateway.Gateway
	token   func() string
	images  *media.ImageCache
	logger  *logging.ChanneledLogger

	mu        sync.Mutex
	products  []commerce.Product
	fetchedAt time.Time
	ttl       time.Duration
}

// NewCatalogService creates the catalog reader. token supplies the live
// bearer token (empty when anonymous); images may be nil when the thumbnail
// cache is disabled.
func NewCatalogService(gw *gateway.Gateway, token func() string, images *media.ImageCache, ttl time.Duration, logger *logging.ChanneledLogger) *CatalogService {
	return &CatalogService{
		gateway: gw,
		token:   token,
		images:  images,
		logger:  logger,
		ttl:     ttl,
	}
}

// Products returns the full product list, served from the in-memory cache
// while fresh.
func (s *CatalogService) Products(ctx context.Context) ([]commerce.Product, error) {
	s.mu.Lock()
	if s.products != nil && time.Since(s.fetchedAt) < s.ttl {
		cached := make([]commerce.Product, len(s.products))
		copy(cached, s.products)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	start := time.Now()
	var products []commerce.Product
	if err := s.gateway.RequestInto(ctx, http.MethodGet, "/products", gateway.Options{Token: s.token()}, &products); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.products = products
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Sync().Info("Product list fetched", "count", len(products), "duration", time.Since(start))
	}

	out := make([]commerce.Product, len(products))
	copy(out, products)
	return out, nil
}

// ProductsByCategory filters the full list client-side.
func (s *CatalogService) ProductsByCategory(ctx context.Context, categoryID int64) ([]commerce.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]commerce.Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Category fetches one category's detail.
func (s *CatalogService) Category(ctx context.Context, id int64) (*commerce.Category, error) {
	var category commerce.Category
	endpoint := fmt.Sprintf("/category/%d", id)
	if err := s.gateway.RequestInto(ctx, http.MethodGet, endpoint, gateway.Options{Token: s.token()}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Thumbnail resolves a product image URL to a locally cached thumbnail path.
// With no image cache configured the source URL is returned untouched.
func (s *CatalogService) Thumbnail(srcURL string) (string, error) {
	if s.images == nil || srcURL == "" {
		return srcURL, nil
	}
	return s.images.Thumbnail(srcURL)
}

// Invalidate drops the in-memory product cache.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.fetchedAt = time.Time{}
}
