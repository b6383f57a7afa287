package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/services"
	transporthttp "github.com/3b3zeem/le-souk-offers-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from environment variables
	config := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting offers service",
		zap.String("spanner_db", config.SpannerDB),
		zap.String("upstream_url", config.UpstreamURL),
		zap.String("http_port", config.HTTPPort))

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, services.Config{
		SpannerDB:   config.SpannerDB,
		UpstreamURL: config.UpstreamURL,
		CacheTTL:    config.CacheTTL,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Arm expiry countdowns for every open sale window
	primeWatcher(ctx, serviceOpts, logger)

	// 4. Start the periodic catalog sync, if enabled
	syncCtx, cancelSync := context.WithCancel(ctx)
	defer cancelSync()
	if config.SyncInterval > 0 {
		go runSyncLoop(syncCtx, serviceOpts, config.SyncInterval, logger)
	}

	// 5. Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + config.HTTPPort,
		Handler: transporthttp.NewRouter(serviceOpts.Handlers, logger),
	}

	go func() {
		logger.Info("http server listening", zap.String("port", config.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	// 6. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")

	cancelSync()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	return nil
}

// primeWatcher arms a countdown for every on-sale item with a full window so
// expiries are noticed even before the first sync of this process.
func primeWatcher(ctx context.Context, opts *services.ServiceOptions, logger *zap.Logger) {
	items, err := opts.ReadModel.ListWithSaleWindow(ctx)
	if err != nil {
		logger.Warn("failed to prime expiry watcher", zap.Error(err))
		return
	}
	for _, item := range items {
		opts.Watcher.Track(item.ID, *item.SaleEndsAt)
	}
	logger.Info("expiry watcher primed", zap.Int("tracked", opts.Watcher.Len()))
}

// runSyncLoop refreshes the catalog snapshot on a fixed interval and re-arms
// the watcher after each successful run.
func runSyncLoop(ctx context.Context, opts *services.ServiceOptions, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := opts.SyncCatalog.Execute(ctx); err != nil {
				logger.Error("catalog sync failed", zap.Error(err))
				continue
			}
			opts.ListOffers.Invalidate()
			primeWatcher(ctx, opts, logger)
		}
	}
}

// Config holds application configuration.
type Config struct {
	SpannerDB    string
	UpstreamURL  string
	HTTPPort     string
	CacheTTL     time.Duration
	SyncInterval time.Duration
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	spannerDB := os.Getenv("SPANNER_DATABASE")
	if spannerDB == "" {
		// Default for local development with emulator
		spannerDB = "projects/test-project/instances/dev-instance/databases/offers-db"
	}

	upstreamURL := os.Getenv("UPSTREAM_URL")
	if upstreamURL == "" {
		upstreamURL = "https://le-souk.dinamo-markting.com"
	}

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cacheTTL = d
		}
	}

	// Zero disables the in-process sync loop; run cmd/sync from a scheduler
	// instead.
	var syncInterval time.Duration
	if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			syncInterval = d
		}
	}

	return Config{
		SpannerDB:    spannerDB,
		UpstreamURL:  upstreamURL,
		HTTPPort:     httpPort,
		CacheTTL:     cacheTTL,
		SyncInterval: syncInterval,
	}
}
