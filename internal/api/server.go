// Copyright (c) 2026 Pulseboard. All rights reserved.

/*
Package api assembles the HTTP surface of the Pulseboard backend.

# Architecture

The package owns the composition root for the router: the global middleware
chain, the health endpoint, the mounted domain routers, and (in production)
the static dashboard bundle. Domain packages contribute their own sub-routers
and never touch the global chain.
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/platform/config"
	"github.com/pulseboard/pulseboard/internal/platform/constants"
	"github.com/pulseboard/pulseboard/internal/platform/middleware"
)

// Server wraps the standard http.Server with the assembled router and the
// lifecycle helpers main needs.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

/*
New builds the fully wired HTTP server.

Parameters:
  - cfg: *config.Config
  - logger: *slog.Logger (Root application logger)
  - db: Pinger (Store connectivity probe for /health)
  - tokenVerifier: middleware.TokenVerifier (Session token verification)
  - authHandler: *auth.Handler

Returns:
  - *Server: Ready to serve; call ListenAndServe
*/
func New(
	cfg *config.Config,
	logger *slog.Logger,
	db Pinger,
	tokenVerifier middleware.TokenVerifier,
	authHandler *auth.Handler,
) *Server {
	router := chi.NewRouter()

	// # Global Middleware Chain
	//
	// Order matters: the request ID and logger must exist before anything can
	// log, recovery must wrap the timeout, and authentication runs for every
	// route so handlers can distinguish anonymous from authenticated.
	router.Use(chimw.CleanPath)
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.SecureHeaders())
	router.Use(middleware.Authenticate(tokenVerifier))

	// # Routes

	router.Method(http.MethodGet, "/health", newHealthHandler(db, cfg.Environment))
	router.Mount("/api/auth", authHandler.Routes())

	// The compiled dashboard is only served by this process in production;
	// development runs the frontend dev server separately.
	if cfg.IsProduction() {
		router.NotFound(spaHandler(cfg.StaticDir))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe starts accepting connections. It blocks until the server
// stops and returns nil on a clean shutdown.
func (server *Server) ListenAndServe() error {
	server.logger.Info("http_server_listening", slog.String("addr", server.httpServer.Addr))
	if err := server.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http_server_failed: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (server *Server) Shutdown(ctx context.Context) error {
	return server.httpServer.Shutdown(ctx)
}

// spaHandler serves the static dashboard bundle, falling back to index.html
// for client-side routes. Paths that escape the bundle directory 404.
func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))

	return func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasPrefix(request.URL.Path, "/api/") {
			http.NotFound(writer, request)
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(writer, request)
			return
		}

		http.ServeFile(writer, request, filepath.Join(staticDir, "index.html"))
	}
}

// Handler exposes the assembled router, primarily for tests.
func (server *Server) Handler() http.Handler {
	return server.httpServer.Handler
}
