package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tavola/ledger/internal/adapter/http/handler"
	"github.com/tavola/ledger/internal/adapter/http/middleware"
	"github.com/tavola/ledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger           zerolog.Logger
	AccountHandler   *handler.AccountHandler
	PostingHandler   *handler.PostingHandler
	LedgerHandler    *handler.LedgerHandler
	ChartHandler     *handler.ChartHandler
	CatalogHandler   *handler.CatalogHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency keys guard the mutating posting endpoints.
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{key}", cfg.AccountHandler.Get)
			r.Put("/{key}/parent", cfg.AccountHandler.SetParent)
			r.Get("/{key}/balance", cfg.LedgerHandler.GetBalance)
			r.Get("/{key}/entries", cfg.LedgerHandler.ListAccountEntries)
		})

		r.Route("/postings", func(r chi.Router) {
			r.Post("/events", cfg.PostingHandler.PostEvent)
			r.Post("/entries", cfg.PostingHandler.PostEntry)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.ListEntries)
			r.Get("/{id}", cfg.LedgerHandler.GetEntry)
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/trial-balance", cfg.LedgerHandler.GetTrialBalance)
			r.Get("/consistency", cfg.LedgerHandler.CheckConsistency)
		})

		r.Route("/chart", func(r chi.Router) {
			r.Get("/", cfg.ChartHandler.Get)
			r.Get("/totals", cfg.ChartHandler.Totals)
			r.Get("/export", cfg.ChartHandler.ExportCSV)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.List)
			r.Get("/{name}", cfg.CatalogHandler.Get)
		})
	})

	return r
}
