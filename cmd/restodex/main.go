package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/backend"
	"github.com/kailas-cloud/restodex/internal/config"
	logpkg "github.com/kailas-cloud/restodex/internal/logger"
	"github.com/kailas-cloud/restodex/internal/metrics"
	chiTransport "github.com/kailas-cloud/restodex/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/restodex/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	nearbyuc "github.com/kailas-cloud/restodex/internal/usecase/nearby"
	"github.com/kailas-cloud/restodex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting restodex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	metrics.RegisterCatalogMetrics()

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open catalog store", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to database")

	if err := store.Backend.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure catalog schema", zap.Error(err))
	}

	// Use case services
	catalogSvc := cataloguc.New(store.Backend)
	nearbySvc := nearbyuc.New(store.Backend, cfg.Catalog.MaxGeoCandidates)
	healthSvc := healthuc.New(store, store.Backend)

	server := chiTransport.NewServer(catalogSvc, nearbySvc, healthSvc, chiTransport.Limits{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		DefaultRadiusKm: cfg.Catalog.DefaultRadiusKm,
		MaxRadiusKm:     cfg.Catalog.MaxRadiusKm,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(corsMiddleware(cfg.CORS))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func corsMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler
}
