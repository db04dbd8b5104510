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

	"github.com/bettervitals/backend/config"
	httpDelivery "github.com/bettervitals/backend/internal/delivery/http"
	"github.com/bettervitals/backend/internal/domain"
	"github.com/bettervitals/backend/internal/infrastructure/cache"
	"github.com/bettervitals/backend/internal/infrastructure/catalog"
	"github.com/bettervitals/backend/internal/infrastructure/gemini"
	"github.com/bettervitals/backend/internal/observability"
	"github.com/bettervitals/backend/internal/platform/logger"
	"github.com/bettervitals/backend/internal/usecase"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting BetterVitals backend",
		"version", version,
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"cache_type", cfg.Cache.Type,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, log, observability.TracingConfig{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Server.Environment,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	products, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded",
		"products", len(products.Products()),
		"tools", len(products.Tools()),
	)

	narrativeCache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	// Narratives stay disabled without a key; the deterministic endpoints still work
	var narrator domain.Narrator
	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		BaseURL:           cfg.Gemini.BaseURL,
		RequestsPerSecond: cfg.Gemini.RequestsPerSecond,
		Burst:             cfg.Gemini.Burst,
		Timeout:           cfg.Gemini.Timeout,
	}, log)
	switch {
	case errors.Is(err, domain.ErrProviderNotConfigured):
		log.Warn("GEMINI_API_KEY not set: narrative endpoints will answer 500")
	case err != nil:
		return fmt.Errorf("init gemini client: %w", err)
	default:
		narrator = geminiClient
		log.Info("gemini configured", "model", cfg.Gemini.Model)
	}

	assessments := usecase.NewAssessmentService(narrator, narrativeCache, products,
		usecase.AssessmentServiceConfig{CacheTTL: cfg.Cache.TTL}, log)

	handler := httpDelivery.NewHandler(assessments, products, log)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newCache builds the narrative cache selected by configuration. The returned
// cache is nil for type "none".
func newCache(ctx context.Context, cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	case "none":
		return nil, func() {}, nil
	default:
		memoryCache := cache.NewMemoryCache(0)
		return memoryCache, func() { _ = memoryCache.Close() }, nil
	}
}
