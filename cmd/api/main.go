// Package main provides the entrypoint for the FitSight API gateway.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/fitsight/fitsight/internal/api"
	"github.com/fitsight/fitsight/internal/api/middleware"
	"github.com/fitsight/fitsight/internal/config"
	"github.com/fitsight/fitsight/internal/dashboard"
	"github.com/fitsight/fitsight/internal/fitapi"
	"github.com/fitsight/fitsight/internal/mutation"
	"github.com/fitsight/fitsight/internal/session"
	"github.com/fitsight/fitsight/internal/telemetry"
	"github.com/fitsight/fitsight/internal/upstream/resilience"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type cli struct {
	Config string `help:"Path to the YAML config file." short:"c" type:"path"`
}

func main() {
	const serviceName = "fitsight-api"

	var flags cli
	kong.Parse(&flags,
		kong.Name("fitsight-api"),
		kong.Description("Dashboard gateway for the fitness tracking API."),
	)

	cfg, err := config.Load(flags.Config)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup structured logging
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("starting FitSight API")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}
	upstreamMetrics, err := middleware.NewUpstreamMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upstream metrics")
	}

	// One resilient client per logical upstream resource so a failing ML
	// endpoint cannot isolate the workout list with it.
	httpClients := make(map[string]*resilience.Client)
	for _, resource := range []string{
		fitapi.ResourceAuth, fitapi.ResourceWorkouts, fitapi.ResourceNutrition,
		fitapi.ResourceAnalytics, fitapi.ResourceML, fitapi.ResourcePrediction,
	} {
		breakerCfg := resilience.DefaultBreakerConfig(resource)
		breakerCfg.Timeout = cfg.Upstream.BreakerCooldown
		httpClients[resource] = resilience.NewClient(resilience.ClientConfig{
			Name:           resource,
			Timeout:        cfg.Upstream.QueryTimeout,
			CircuitBreaker: &breakerCfg,
		})
	}

	client := fitapi.NewClient(fitapi.ClientConfig{
		BaseURL:     cfg.Upstream.BaseURL,
		TokenSource: &session.ContextSource{},
		HTTPClients: httpClients,
		Logger:      log,
		Recorder:    upstreamMetrics,
	})

	orchestrator := dashboard.New(dashboard.Config{
		Client:       client,
		Logger:       log,
		QueryTimeout: cfg.Upstream.QueryTimeout,
	})

	coordinator := mutation.New(mutation.Config{
		Client: client,
		Logger: log,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		ServiceName:  serviceName,
		Metrics:      metrics,
		Client:       client,
		Orchestrator: orchestrator,
		Coordinator:  coordinator,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
