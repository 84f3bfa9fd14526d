package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cdlmock/accountapi/internal/account"
	"github.com/cdlmock/accountapi/internal/auth"
	"github.com/cdlmock/accountapi/internal/config"
	"github.com/cdlmock/accountapi/internal/handler"
	"github.com/cdlmock/accountapi/internal/metrics"
	"github.com/cdlmock/accountapi/internal/middleware"
	"github.com/cdlmock/accountapi/internal/validate"
)

// Deps are the collaborators the router wires into handlers and gates.
// Limiter and Health may be nil when no Redis is configured.
type Deps struct {
	Config  *config.Config
	Logger  *slog.Logger
	Tokens  *auth.Tokens
	Store   account.Store
	Limiter middleware.RateLimiter
	Health  handler.HealthChecker
	Metrics metrics.Recorder
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(d Deps) *chi.Mux {
	if d.Metrics == nil {
		d.Metrics = metrics.NewNoop()
	}
	cfg := d.Config

	tokenHandler := handler.NewTokenHandler(d.Tokens, cfg.TokenSubject, d.Logger, d.Metrics)
	emailHandler := handler.NewEmailHandler(d.Store, validate.New(), d.Logger, d.Metrics)
	healthHandler := handler.NewHealthHandler(d.Health)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Token issuance is open; only rate limited when Redis is available.
	r.With(middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  d.Logger,
		Limiter: d.Limiter,
		Metrics: d.Metrics,
		Enabled: d.Limiter != nil,
		RPS:     cfg.RateLimitTokenRPS,
		Burst:   cfg.RateLimitTokenBurst,
	})).Get("/generate-token", tokenHandler.Generate)

	// Account routes: authentication first, then tenant. Body size is only
	// checked once the caller has passed both gates.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Guard(
			middleware.GuardConfig{Logger: d.Logger, Metrics: d.Metrics},
			middleware.BearerGate(d.Tokens),
			middleware.TenantGate(cfg.TenantID),
		))
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

		r.Get("/get_email/{account_id}", emailHandler.Get)
		r.Post("/change_email", emailHandler.Change)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
