package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kirkbot2/speedaudit/internal/api/handlers"
	"github.com/kirkbot2/speedaudit/internal/api/middleware"
	"github.com/kirkbot2/speedaudit/internal/config"
	"github.com/kirkbot2/speedaudit/internal/domain/audit"
	"github.com/kirkbot2/speedaudit/internal/pkg/logger"
	"github.com/kirkbot2/speedaudit/internal/pkg/metrics"
	"github.com/kirkbot2/speedaudit/internal/pkg/validator"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Deps bundles everything the router needs.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      *sql.DB
	Service audit.Service
}

// New creates the HTTP router with all routes and middleware
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.DefaultCORS(deps.Config.Server.AllowedOrigin))
	r.Use(metrics.Middleware)

	validate := validator.New()
	auditHandler := handlers.NewAuditHandler(deps.Service, validate, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, Version)

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Audits are expensive (each one fetches a remote page), so the
		// write path gets a tighter rate limit than the read paths.
		r.Route("/audits", func(r chi.Router) {
			r.With(middleware.RateLimit(1, 3)).Post("/", auditHandler.Run)
			r.With(middleware.RateLimit(10, 20)).Group(func(r chi.Router) {
				r.Get("/", auditHandler.List)
				r.Get("/latest", auditHandler.Latest)
				r.Get("/{id}", auditHandler.Get)
			})
		})
	})

	return r
}
