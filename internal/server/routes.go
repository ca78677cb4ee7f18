package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/parley-mcp/parley/internal/handler"
	"github.com/parley-mcp/parley/internal/middleware"
)

func (s *Server) routes() http.Handler {
	cfg := s.cfg

	authEnabled := cfg.EnableAuth && len(cfg.APIKeys) > 0
	log.Info().
		Bool("auth_enabled", authEnabled).
		Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Strs("cors_origins", cfg.CORSOrigins).
		Msg("http configuration")
	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("auth enabled but no API keys configured - /mcp is open")
	}

	healthH := handler.NewHealthHandler(s.version, cfg.ConfirmationLogPath)

	// heartbeats keep proxies from cutting streams that wait out long
	// confirmation windows
	streamable := mcpserver.NewStreamableHTTPServer(s.mcp,
		mcpserver.WithHeartbeatInterval(30*time.Second),
	)

	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	// Auth + rate limiting for the MCP endpoint
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
		if authEnabled {
			r.Use(middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
		}
		r.Handle("/mcp", streamable)
	})

	return r
}
