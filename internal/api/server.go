// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It is the composition root for the chi router: public visitor routes,
    the jury workspace and the admin dashboard share one /api/v1 tree.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/marsai/festival/internal/admin"
	"github.com/marsai/festival/internal/event"
	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/jury"
	"github.com/marsai/festival/internal/platform/config"
	"github.com/marsai/festival/internal/platform/constants"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/platform/middleware"
	"github.com/marsai/festival/internal/reference"
	"github.com/marsai/festival/internal/submission"
	"github.com/marsai/festival/internal/users/account"
	"github.com/marsai/festival/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It answers 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It answers 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Account *account.Handler

	// Festival serves the active edition publicly and the CMS to super admins.
	Festival *festival.Handler

	// Submission drives the multi-step submission wizard.
	Submission *submission.Handler

	Gallery *gallery.Handler
	Jury    *jury.Handler
	Admin   *admin.Handler
	Event   *event.Handler

	// Reference serves the option lists of the wizard forms.
	Reference *reference.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.Locale(i18n.Parse(cfg.DefaultLocale)))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/account", h.Account.Routes())

		// Visitors
		api.Mount("/festivals", h.Festival.PublicRoutes())
		api.Mount("/drafts", h.Submission.Routes())
		api.Mount("/films", h.Gallery.Routes())
		api.Mount("/events", h.Event.Routes())
		api.Mount("/reference", h.Reference.Routes())

		// Staff
		api.Mount("/jury", h.Jury.Routes())
		api.Route("/admin", func(staff chi.Router) {
			staff.Mount("/festivals", h.Festival.Routes())
			staff.Mount("/accounts", h.Account.StaffRoutes())
			staff.Mount("/", h.Admin.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
