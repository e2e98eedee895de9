package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Lazycharm/Careerpilot-sub001/internal/api/handlers"
	"github.com/Lazycharm/Careerpilot-sub001/internal/api/middleware"
	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/logger"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/metrics"
)

// Handlers collects every handler the router mounts
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Generate *handlers.GenerateHandler
	Usage    *handlers.UsageHandler
	Settings *handlers.SettingsHandler
	Billing  *handlers.BillingHandler
	Document *handlers.DocumentHandler
}

// New builds the public API router
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		r.Get("/health", h.Health.Health)
		r.Get("/ready", h.Health.Ready)

		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.Refresh)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)

		r.Get("/api/v1/billing/plans", h.Billing.Plans)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)

		// AI generation; tighter per-user limit since every call costs money
		r.Route("/api/v1/ai", func(r chi.Router) {
			r.Use(middleware.UserRateLimit(1, 5))

			r.Post("/cover-letter", h.Generate.CoverLetter)
			r.Post("/interview-questions", h.Generate.InterviewQuestions)
			r.Post("/resume/tailor", h.Generate.TailorResume)
			r.Post("/resume/experience", h.Generate.OptimizeExperience)
		})

		r.Get("/api/v1/usage", h.Usage.Summary)

		r.Get("/api/v1/billing/subscriptions", h.Billing.Subscriptions)

		r.Route("/api/v1/documents", func(r chi.Router) {
			r.Get("/", h.Document.List)
			r.Post("/", h.Document.Create)
			r.Get("/{id}", h.Document.Get)
			r.Put("/{id}", h.Document.Update)
			r.Delete("/{id}", h.Document.Delete)
		})
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		r.Use(middleware.AdminOnly())

		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Get("/settings", h.Settings.List)
			r.Put("/settings/{key}", h.Settings.Update)
			r.Post("/settings/initialize", h.Settings.InitializeDefaults)

			r.Get("/usage/near-limit", h.Usage.NearLimit)
			r.Post("/usage/{id}/reset", h.Usage.Reset)
		})
	})

	return r
}
