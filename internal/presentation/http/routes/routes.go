// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/GreenBasketHQ/greenbasket-go/internal/application/container"
	"github.com/GreenBasketHQ/greenbasket-go/internal/presentation/http/handlers"
	"github.com/GreenBasketHQ/greenbasket-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	healthHandlers := handlers.NewHealthHandlers(container)
	sessionHandlers := handlers.NewSessionHandlers(container.SessionService, container.Logger)
	cartHandlers := handlers.NewCartHandlers(container.CartService, container.Logger)
	wishlistHandlers := handlers.NewWishlistHandlers(container.WishlistService, container.Logger)
	addressHandlers := handlers.NewAddressHandlers(container.AddressService, container.Logger)
	catalogHandlers := handlers.NewCatalogHandlers(container.CatalogService, container.Logger)
	orderHandlers := handlers.NewOrderHandlers(container.OrderService, container.Logger)
	sseHandlers := handlers.NewSSEHandlers(container.Broadcaster, container.ReadyGate, container.Logger)
	lockHandlers := handlers.NewLockHandlers(container.LockService, container.Logger)
	voiceHandlers := handlers.NewVoiceHandlers(container.VoiceService, container.Logger)

	// Liveness and readiness stay at top level
	r.GET("/health", healthHandlers.GetHealth)
	r.GET("/ready", healthHandlers.GetReady)

	api := r.Group("/api/v1")
	{
		// Session lifecycle
		sessionGroup := api.Group("/session")
		{
			sessionGroup.GET("/status", sessionHandlers.GetStatus)
			sessionGroup.POST("/login", sessionHandlers.PostLogin)
			sessionGroup.POST("/logout", sessionHandlers.PostLogout)
			sessionGroup.POST("/profile/refresh", sessionHandlers.PostRefreshProfile)
		}

		// Cart
		cartGroup := api.Group("/cart")
		{
			cartGroup.GET("", cartHandlers.GetCart)
			cartGroup.POST("/items", cartHandlers.PostItem)
			cartGroup.DELETE("/items/:id", cartHandlers.DeleteItem)
			cartGroup.PUT("/items/:id/quantity", cartHandlers.PutQuantity)
			cartGroup.POST("/reconcile", cartHandlers.PostReconcile)
		}

		// Wishlist
		wishlistGroup := api.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistHandlers.GetWishlist)
			wishlistGroup.POST("/items", wishlistHandlers.PostItem)
			wishlistGroup.GET("/items/:id", wishlistHandlers.GetContains)
			wishlistGroup.DELETE("/items/:id", wishlistHandlers.DeleteItem)
			wishlistGroup.POST("/reconcile", wishlistHandlers.PostReconcile)
		}

		// Address book
		addressGroup := api.Group("/addresses")
		{
			addressGroup.GET("", addressHandlers.GetAddresses)
			addressGroup.GET("/default", addressHandlers.GetDefault)
			addressGroup.POST("", addressHandlers.PostAddress)
			addressGroup.PATCH("/:id", addressHandlers.PatchAddress)
			addressGroup.DELETE("/:id", addressHandlers.DeleteAddress)
			addressGroup.POST("/:id/default", addressHandlers.PostDefault)
			addressGroup.POST("/reconcile", addressHandlers.PostReconcile)
		}

		// Catalog reads proxied through the gateway
		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("/products", catalogHandlers.GetProducts)
			catalogGroup.GET("/categories/:id", catalogHandlers.GetCategory)
			catalogGroup.GET("/categories/:id/products", catalogHandlers.GetProductsByCategory)
			catalogGroup.GET("/thumbnail", catalogHandlers.GetThumbnail)
			catalogGroup.POST("/invalidate", catalogHandlers.PostInvalidate)
		}

		// App lock
		lockGroup := api.Group("/lock")
		{
			lockGroup.GET("", lockHandlers.GetStatus)
			lockGroup.POST("/pin", lockHandlers.PostPin)
			lockGroup.POST("/verify", lockHandlers.PostVerify)
			lockGroup.DELETE("/pin", lockHandlers.DeletePin)
		}

		// Order history
		api.GET("/orders/mine", orderHandlers.GetMine)

		// Event stream and voice search
		api.GET("/events", sseHandlers.GetEvents)
		api.GET("/voice/transcribe", voiceHandlers.GetTranscribe)
	}

	return r
}
