package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"productworker/config"
	"productworker/internal/api"
	"productworker/internal/fetch"
	"productworker/internal/scraper"
	"productworker/logger"
	"productworker/services/cache"
	"productworker/services/proxy"
	"productworker/services/storage"
	"productworker/services/worker"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("crawl_interval", cfg.CrawlInterval).
		Int("categories", len(cfg.CategoryURLs)).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Proxy pool; an absent file just means direct connections
	pool, err := proxy.LoadPool(cfg.ProxyFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.ProxyFile).Msg("Failed to load proxy pool")
	}
	log.Info().Int("proxies", pool.Count()).Msg("Proxy pool loaded")

	// Cache service for rate-limit cool-off windows
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	} else {
		cacheSvc = cache.NewLRUService(1024)
		logger.Info("Using in-process cache")
	}

	// Product store
	store := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	defer store.Close()
	logger.Info("Connected to Redis at %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)

	// Scraping core
	fetcher := fetch.NewClient(pool, cfg.FetchTimeout, cfg.FetchInsecureTLS)
	scrapers := scraper.NewScrapers(fetcher, cacheSvc)
	if len(scrapers) == 0 {
		log.Fatal().Msg("No scrapers were created")
	}
	registry := scraper.NewRegistry(scrapers)
	metrics := scraper.NewMetrics()
	pipeline := scraper.NewPipeline(registry, store, metrics)

	log.Info().Int("scraper_count", registry.Count()).Msg("Created scrapers")

	// Permanent job failures are logged for operator follow-up
	onPermanent := func(categoryURL string, err error) {
		log.Error().
			Str("url", categoryURL).
			Err(err).
			Msg("Category permanently failed, operator attention needed")
	}

	w := worker.NewWorker(
		pipeline,
		cfg.CategoryURLs,
		cfg.CrawlInterval,
		cfg.JobAttempts,
		cfg.JobTimeout,
		onPermanent,
	)

	workerDone := make(chan struct{})
	go func() {
		log.Info().Msg("Starting product worker")
		w.Start(ctx)
		close(workerDone)
	}()

	// HTTP API
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewHandlers(store, metrics).Router(),
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting HTTP API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
	case err := <-serverErr:
		log.Error().Err(err).Msg("HTTP server failed")
	}
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	<-workerDone
	log.Info().Msg("Shut down gracefully")
}
