// Package server provides HTTP server initialization and management.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/container"
	"github.com/GreenBasketHQ/greenbasket-go/internal/presentation/http/routes"
	"github.com/GreenBasketHQ/greenbasket-go/pkg/config"
)

// Server wraps the HTTP facade with configuration and dependency injection
type Server struct {
	httpServer *http.Server
	container  *container.Container
}

// New creates the facade server. It binds to loopback only; the engine is a
// device-local process, not a network service.
func New(port string, container *container.Container) *Server {
	router := routes.SetupRoutes(container)

	httpServer := &http.Server{
		Addr:         "127.0.0.1:" + port,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	return &Server{
		httpServer: httpServer,
		container:  container,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	log.Printf("Starting HTTP facade on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP facade: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the HTTP facade
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Shutting down HTTP facade...")
	return s.httpServer.Shutdown(ctx)
}
