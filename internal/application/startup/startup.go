// Package startup prepares the sync engine
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/container"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/session"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/media"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/security"
	"github.com/GreenBasketHQ/greenbasket-go/internal/presentation/http/server"
	"github.com/GreenBasketHQ/greenbasket-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize runs the complete engine startup sequence: local storage first,
// then session restoration, then collection hydration, then the localhost
// facade. The ready gate is released exactly once, after hydration settles,
// regardless of how degraded the result is.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("GreenBasket sync engine starting...")

	// Step 1: Create the channeled logger
	logCfg := logging.DefaultLoggerConfig()
	logCfg.OutputToFile = config.LogToFile
	logCfg.LogDirectory = config.LogDirectory
	logCfg.JSONFormat = config.LogJSON

	logger, err := logging.NewChanneledLogger(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized", "logDir", config.LogDirectory)

	// Step 2: Load or create the device encryption key
	logger.Startup().Info("Loading device key...")
	deviceKey, err := security.LoadOrCreateDeviceKey(config.DeviceKeyPath)
	if err != nil {
		return fmt.Errorf("failed to load device key: %w", err)
	}

	// Step 3: Open the persistent store and warm the in-memory cache.
	// Session restoration reads from the warm cache, so this must finish
	// before anything touches auth state. A failed warm sync degrades to an
	// empty cache rather than blocking startup.
	logger.Startup().Info("Opening persistent store...")
	startStoreTime := time.Now()

	st, err := store.Open(config.StoreDriver, storeDSN(), logger)
	if err != nil {
		return fmt.Errorf("failed to open persistent store: %w", err)
	}

	syncCtx, cancelSync := context.WithTimeout(context.Background(), 5*time.Second)
	if err := st.Sync(syncCtx); err != nil {
		logger.Startup().Error("Store warm sync failed, continuing with empty cache",
			"error", err.Error(), "duration", time.Since(startStoreTime))
	} else {
		logger.Startup().Info("Persistent store ready", "duration", time.Since(startStoreTime))
	}
	cancelSync()

	// Step 4: Construct the remote gateway
	logger.Startup().Info("Initializing remote gateway...", "baseURL", config.APIBaseURL)
	gw := gateway.New(config.APIBaseURL, config.GatewayTimeout, logger)

	// Step 5: Initialize the product image cache (optional)
	images, err := media.NewImageCache(config.ImageCacheDir, config.ImageCacheMaxMB, config.ThumbnailMaxEdge, logger)
	if err != nil {
		logger.Startup().Error("Image cache unavailable, thumbnails disabled", "error", err.Error())
		images = nil
	}

	// Step 6: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(st, gw, images, deviceKey, logger)
	logger.Startup().Info("Container initialization complete")

	// Step 7: Restore the session from persisted credentials
	logger.Startup().Info("Restoring session...")
	startSessionTime := time.Now()

	status := appContainer.SessionService.Bootstrap()
	logger.Startup().Info("Session restored",
		"status", string(status), "duration", time.Since(startSessionTime))

	// Step 8: Hydrate domain collections. Hydration never fails upward; a
	// missing or corrupt key yields an empty collection.
	logger.Startup().Info("Hydrating domain collections...")
	startHydrateTime := time.Now()

	hydrateCollections(appContainer, status)

	logger.Startup().Info("Domain collections hydrated",
		"cartItems", appContainer.CartService.Count(),
		"wishlistItems", appContainer.WishlistService.Count(),
		"addresses", appContainer.AddressService.Count(),
		"duration", time.Since(startHydrateTime))

	// Step 9: Release the ready gate. UI-facing surfaces unblock here.
	appContainer.ReadyGate.Release()
	appContainer.Broadcaster.Publish("ready", map[string]string{"status": string(status)})

	// Step 10: Start background reconciliation
	backgroundCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	if config.ReconcileEnabled {
		logger.Startup().Info("Starting background reconciliation", "interval", config.ReconcileInterval)
		go runReconcileLoop(backgroundCtx, appContainer, logger)
	}

	// Step 11: Start the localhost HTTP facade
	logger.Startup().Info("Starting HTTP facade...")
	httpServer := server.New(config.Port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP facade", "address", "127.0.0.1:"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP facade failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Engine startup complete",
		"totalDuration", time.Since(start),
		"sessionStatus", string(status),
		"port", config.Port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	cancelBackground()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP facade...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during facade shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP facade stopped successfully")
	}

	logger.Shutdown().Info("Closing persistent store...")
	if err := st.Close(); err != nil {
		logger.Shutdown().Error("Error closing persistent store", "error", err.Error())
	} else {
		logger.Shutdown().Info("Persistent store closed successfully")
	}

	logger.Shutdown().Info("Engine shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// hydrateCollections loads persisted domain state. All collection keys are
// user-scoped, so hydration only happens for an authenticated session;
// anonymous sessions start with empty collections.
func hydrateCollections(appContainer *container.Container, status session.Status) {
	if status != session.StatusAuthenticated {
		return
	}
	appContainer.CartService.Hydrate()
	appContainer.WishlistService.Hydrate()
	appContainer.AddressService.Hydrate()
}

// runReconcileLoop periodically drops the catalog cache and, while a session
// is live, re-fetches the profile so long-running installs converge on server
// state. Local collections are only replaced through explicit reconcile
// calls; this loop never touches them.
func runReconcileLoop(ctx context.Context, appContainer *container.Container, logger *logging.ChanneledLogger) {
	ticker := time.NewTicker(config.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			appContainer.CatalogService.Invalidate()

			current := appContainer.SessionService.Current()
			if !current.Authenticated() {
				continue
			}

			reqCtx, cancel := context.WithTimeout(ctx, config.GatewayTimeout)
			if _, err := appContainer.SessionService.RefreshProfile(reqCtx); err != nil {
				logger.Sync().Warn("Background profile refresh failed", "error", err.Error())
			}
			cancel()
		}
	}
}

// storeDSN resolves the store data source from config. The sqlite3 driver
// gets a file under the data directory; libsql points at a hosted replica.
func storeDSN() string {
	if config.StoreDriver == "libsql" && config.LibsqlURL != "" {
		dsn := config.LibsqlURL
		if config.LibsqlToken != "" {
			dsn += "?authToken=" + config.LibsqlToken
		}
		return dsn
	}
	return filepath.Join(config.DataDir, "greenbasket.db")
}

// setupLogging configures process-level logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
