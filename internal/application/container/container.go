// Package container provides dependency injection for all singleton services
package container

import (
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/services"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/media"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/messaging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
	"github.com/GreenBasketHQ/greenbasket-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Domain state services
	SessionService  *services.SessionService
	CartService     *services.CartService
	WishlistService *services.WishlistService
	AddressService  *services.AddressService

	// Remote read services
	CatalogService *services.CatalogService
	OrderService   *services.OrderService
	VoiceService   *services.VoiceService
	LockService    *services.LockService

	// Infrastructure dependencies
	Store       *store.Store
	Gateway     *gateway.Gateway
	Broadcaster *messaging.Broadcaster
	ImageCache  *media.ImageCache
	Logger      *logging.ChanneledLogger

	// ReadyGate is released exactly once when the bootstrap sequence
	// finishes. The HTTP facade reports readiness from it.
	ReadyGate *messaging.Gate
}

// NewContainer creates and wires all singleton services. The image cache may
// be nil when thumbnail caching is disabled.
func NewContainer(st *store.Store, gw *gateway.Gateway, images *media.ImageCache, deviceKey string, logger *logging.ChanneledLogger) *Container {
	broadcaster := messaging.NewBroadcaster(config.MaxEventSubscribers, logger)

	sessionService := services.NewSessionService(st, gw, broadcaster, deviceKey, logger)
	cartService := services.NewCartService(st, broadcaster, logger)
	wishlistService := services.NewWishlistService(st, broadcaster, logger)
	addressService := services.NewAddressService(st, broadcaster, logger)

	// Logout, forced or voluntary, empties every collection after the store
	// keys are cleared.
	sessionService.OnLogout(func() {
		cartService.Reset()
		wishlistService.Reset()
		addressService.Reset()
	})

	catalogService := services.NewCatalogService(gw, sessionService.Token, images, 5*time.Minute, logger)

	return &Container{
		SessionService:  sessionService,
		CartService:     cartService,
		WishlistService: wishlistService,
		AddressService:  addressService,
		CatalogService:  catalogService,
		OrderService:    services.NewOrderService(gw, sessionService.Token, logger),
		VoiceService:    services.NewVoiceService(config.AAIAPIKey, logger),
		LockService:     services.NewLockService(st, logger),
		Store:           st,
		Gateway:         gw,
		Broadcaster:     broadcaster,
		ImageCache:      images,
		Logger:          logger,
		ReadyGate:       messaging.NewGate(),
	}
}
