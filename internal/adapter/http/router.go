package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/DmtrPpl/vat-bot/internal/adapter/http/handler"
	"github.com/DmtrPpl/vat-bot/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WebhookHandler *handler.WebhookHandler
	LedgerHandler  *handler.LedgerHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
}

// NewRouter creates the HTTP router: the Telegram webhook, the REST
// surface for the CLI, and the health and metrics endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Telegram webhook
	r.Post("/webhook/telegram", cfg.WebhookHandler.Handle)

	// REST surface
	r.Route("/api/v1/sessions/{key}", func(r chi.Router) {
		r.Post("/messages", cfg.LedgerHandler.IngestMessage)
		r.Get("/summary", cfg.LedgerHandler.Summary)
		r.Delete("/entries", cfg.LedgerHandler.Reset)
	})

	return r
}
