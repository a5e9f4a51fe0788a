// Package server provides HTTP server setup and handlers
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tvcorporativa/internal/config"
	"tvcorporativa/internal/providers"
	"tvcorporativa/internal/repository"
	"tvcorporativa/internal/templates"
	"tvcorporativa/internal/videosource"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server represents the HTTP server
type Server struct {
	config    *config.Config
	repos     *repository.Repositories
	templates *templates.Manager
	providers *providers.Client
	videos    *videosource.Resolver
	router    *chi.Mux
	http      *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, repos *repository.Repositories, tmpl *templates.Manager) *Server {
	s := &Server{
		config:    cfg,
		repos:     repos,
		templates: tmpl,
		providers: providers.New(time.Duration(cfg.Providers.FetchTimeoutSec) * time.Second),
		videos:    videosource.New(time.Duration(cfg.Providers.ProbeTimeoutSec) * time.Second),
		router:    chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.http = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Run starts the server and handles graceful shutdown
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("🚀 Server starting on %s", s.config.Address())
		serverErrors <- s.http.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Printf("⚠️ Received %v signal, shutting down...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			log.Printf("❌ Graceful shutdown failed: %v", err)
			if err := s.http.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
		}

		log.Println("✅ Server shutdown complete")
	}

	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.securityHeaders)
	s.router.Use(middleware.Compress(5))

	// Generous enough for the display render, which may wait on the
	// weather and quote providers plus the video probe.
	s.router.Use(middleware.Timeout(45 * time.Second))
}

// securityHeaders adds security-related headers to all responses
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// The display embeds third-party players (YouTube, Drive,
		// arbitrary CDNs), so frames and media stay open.
		csp := "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self' 'unsafe-inline'; " +
			"img-src * data:; " +
			"media-src *; " +
			"frame-src *; " +
			"font-src 'self'"
		w.Header().Set("Content-Security-Policy", csp)

		next.ServeHTTP(w, r)
	})
}

// GetRouter returns the chi router (useful for testing)
func (s *Server) GetRouter() *chi.Mux {
	return s.router
}
