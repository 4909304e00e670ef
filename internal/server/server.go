// Package server provides the HTTP API for the concierge.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	limitermiddleware "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"github.com/hyperjump/concierge/internal/config"
	"github.com/hyperjump/concierge/internal/intent"
	"github.com/hyperjump/concierge/internal/reply"
	"github.com/hyperjump/concierge/internal/solana"
	"github.com/hyperjump/concierge/internal/storage"
)

// Server is the HTTP server for the concierge API.
type Server struct {
	resolver    *intent.Resolver
	provisioner *intent.Provisioner
	replies     *reply.Builder
	verifier    *solana.Client
	storage     storage.Storage
	config      *config.ServerConfig
	logger      *zap.Logger
	server      *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	resolver *intent.Resolver,
	provisioner *intent.Provisioner,
	replies *reply.Builder,
	verifier *solana.Client,
	store storage.Storage,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		resolver:    resolver,
		provisioner: provisioner,
		replies:     replies,
		verifier:    verifier,
		storage:     store,
		config:      cfg,
		logger:      logger,
	}
}

// routes builds the router. Split from Start so handler tests can exercise
// the full middleware stack.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	chatRate := limiter.Rate{Period: time.Minute, Limit: int64(s.config.ChatRatePerMinute)}
	chatLimiter := limitermiddleware.NewMiddleware(limiter.New(memory.NewStore(), chatRate))

	r.Group(func(r chi.Router) {
		r.Use(chatLimiter.Handler)
		r.Post("/api/v1/chat", s.handleChat)
	})
	r.Post("/api/v1/verify-tx", s.handleVerifyTx)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/greet/{name}", s.handleGreet)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
