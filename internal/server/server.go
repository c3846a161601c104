// Package server exposes the HTTP surface: admin login, the
// four-course board API, the rich special form endpoints, the public
// guest read, and the ambient health/metrics routes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborlane/specials/internal/auth"
	"github.com/harborlane/specials/internal/middleware"
	"github.com/harborlane/specials/internal/service"
)

// Server wires the services to their routes.
type Server struct {
	specials *service.SpecialService
	auth     *service.AuthService
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// New creates a server from its services.
func New(specials *service.SpecialService, authSvc *service.AuthService, sessions *auth.SessionManager, logger *slog.Logger) *Server {
	return &Server{
		specials: specials,
		auth:     authSvc,
		sessions: sessions,
		logger:   logger,
	}
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	guard := middleware.RequireSession(s.sessions)

	mux.HandleFunc("POST /api/admin/login", s.handleLogin)

	mux.Handle("GET /api/admin/specials", guard(http.HandlerFunc(s.handleGetBoard)))
	mux.Handle("PUT /api/admin/specials", guard(http.HandlerFunc(s.handlePutBoard)))

	mux.Handle("GET /api/admin/special", guard(http.HandlerFunc(s.handleGetSpecial)))
	mux.Handle("POST /api/admin/special", guard(http.HandlerFunc(s.handleSaveSpecial)))

	mux.HandleFunc("GET /api/specials/today", s.handlePublicToday)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Metrics(middleware.Logging(mux))
}
