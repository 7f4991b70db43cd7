// Package server hosts the portfolio HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Deps are the components the router serves. Tracker and Stats are optional;
// the admin route is only mounted when AdminToken is set and Stats is non-nil.
type Deps struct {
	Content    ContentService
	Contact    gin.HandlerFunc
	Metrics    *metrics.Metrics
	Tracker    *analytics.Tracker
	Stats      analytics.StatsSource
	AdminToken string
	Logger     logger.Logger
}

// NewRouter builds the gin engine with middleware and routes. Callers set
// the gin mode beforehand.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RecoveryMiddleware(d.Logger))
	r.Use(RequestIDMiddleware(d.Logger))
	r.Use(LoggerMiddleware(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	if d.Tracker != nil {
		r.Use(d.Tracker.Middleware())
	}

	r.GET("/health", health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")
	if d.Content != nil {
		h := &contentHandler{content: d.Content}
		api.GET("/projects", h.projects)
		api.GET("/blog", h.blogPosts)
		api.GET("/blog/:id", h.blogPost)
		api.GET("/certificates", h.certificates)
		api.GET("/about", h.about)
	}
	if d.Contact != nil {
		api.POST("/contact", d.Contact)
	}
	if d.AdminToken != "" && d.Stats != nil {
		admin := api.Group("/admin", analytics.RequireToken(d.AdminToken))
		admin.GET("/stats", analytics.StatsHandler(d.Stats, d.Logger))
	}

	return r
}

// Server is the HTTP server with lifecycle management.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// New creates a Server listening on port.
func New(port int, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		logger: log,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
	}

	// ctx is already done; shutdown needs its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("HTTP server stopped gracefully")
	return nil
}
