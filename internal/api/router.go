// Package api provides the HTTP API for FitSight.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fitsight/fitsight/internal/api/handler"
	"github.com/fitsight/fitsight/internal/api/middleware"
	"github.com/fitsight/fitsight/internal/dashboard"
	"github.com/fitsight/fitsight/internal/fitapi"
	"github.com/fitsight/fitsight/internal/mutation"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version      string
	BuildTime    string
	Logger       zerolog.Logger
	ServiceName  string
	Metrics      *middleware.Metrics
	Client       *fitapi.Client
	Orchestrator *dashboard.Orchestrator
	Coordinator  *mutation.Coordinator
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "fitsight-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Client)
	authHandler := handler.NewAuthHandler(cfg.Client)
	pageHandler := handler.NewPageHandler(cfg.Orchestrator)
	workoutHandler := handler.NewWorkoutHandler(cfg.Coordinator)
	nutritionHandler := handler.NewNutritionHandler(cfg.Coordinator)

	// Rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)
	expensiveRateLimit := middleware.RateLimitByToken(middleware.ExpensiveRateLimit)
	standardRateLimit := middleware.RateLimitByToken(middleware.StandardRateLimit)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth passthrough (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(middleware.Auth).Get("/status", opsHandler.SystemStatus)
		})

		// Aggregated pages (authenticated)
		r.Route("/pages", func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(expensiveRateLimit)
			r.Get("/dashboard", pageHandler.Dashboard)
			r.Get("/analytics", pageHandler.Analytics)
			r.Get("/workouts", pageHandler.Workouts)
			r.Get("/nutrition", pageHandler.Nutrition)
			r.Get("/profile", pageHandler.Profile)
			r.Get("/trends", pageHandler.Trends)
		})

		// Profile update (authenticated)
		r.With(middleware.Auth, standardRateLimit).Put("/profile", authHandler.UpdateProfile)

		// Workout mutations (authenticated)
		r.Route("/workouts", func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(standardRateLimit)
			r.Post("/", workoutHandler.Create)
			r.Post("/prefill", workoutHandler.Prefill)
			r.Delete("/{workoutId}", workoutHandler.Delete)
		})

		// Nutrition mutations (authenticated)
		r.Route("/nutrition", func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(standardRateLimit)
			r.Post("/", nutritionHandler.Create)
			r.Post("/prefill", nutritionHandler.Prefill)
			r.Delete("/{logId}", nutritionHandler.Delete)
		})
	})

	return r
}
