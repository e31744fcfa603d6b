package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/meera/certportal/internal/api/handler"
	mw "github.com/meera/certportal/internal/api/middleware"
	"github.com/meera/certportal/internal/config"
	"github.com/meera/certportal/internal/core"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, tc temporalclient.Client, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: core.NewServices(pool, tc),
		pool:     pool,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(chimw.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
}

func (s *Server) setupRoutes() {
	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.Handler())

	// Health checks
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	auth := handler.NewAuth(s.services.Auth, s.services.User, s.cfg.CookieSecure)
	document := handler.NewDocument(s.services.Document)
	application := handler.NewApplication(s.services.Application)
	certificate := handler.NewCertificate(s.services.Certificate)
	admin := handler.NewAdmin(s.services.Application)

	s.router.Route("/api", func(r chi.Router) {
		// Public endpoints: registration, login, and the mobile-gated
		// tracker and certificate verifier.
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/track-application", application.Track)
		r.Post("/verify-certificate", certificate.Verify)

		// Session-authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(mw.SessionAuth(s.services.Auth))

			r.Post("/logout", auth.Logout)
			r.Get("/user", auth.Me)

			r.Post("/documents", document.Upload)
			r.Get("/documents", document.List)
			r.Get("/documents/{id}", document.Get)

			r.Post("/applications", application.Submit)
			r.Get("/applications", application.List)
			r.Get("/applications/{applicationID}", application.Get)

			r.Get("/certificates", certificate.List)
			r.Post("/certificates/lookup", certificate.Get)
		})

		// Administrative endpoints, guarded by a static API key.
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminAPIKey(s.cfg.AdminAPIKey))

			r.Post("/applications/{applicationID}/approve", admin.Approve)
			r.Post("/applications/{applicationID}/reject", admin.Reject)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
