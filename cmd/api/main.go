package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rajansharma08/lyftr-webhook-api/internal/cache"
	"github.com/rajansharma08/lyftr-webhook-api/internal/cache/redis"
	"github.com/rajansharma08/lyftr-webhook-api/internal/config"
	"github.com/rajansharma08/lyftr-webhook-api/internal/db/gormdb"
	"github.com/rajansharma08/lyftr-webhook-api/internal/handler"
	"github.com/rajansharma08/lyftr-webhook-api/internal/metrics"
	"github.com/rajansharma08/lyftr-webhook-api/internal/middleware"
	mesgRepo "github.com/rajansharma08/lyftr-webhook-api/internal/repository/gorm/message"
	routes "github.com/rajansharma08/lyftr-webhook-api/internal/router"
	"github.com/rajansharma08/lyftr-webhook-api/internal/scheduler"
	"github.com/rajansharma08/lyftr-webhook-api/internal/server"
	"github.com/rajansharma08/lyftr-webhook-api/internal/service"
)

func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	// Structured JSON logging for the whole process.
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	// Init optional cache. An empty address means the dedupe fast path and
	// stats snapshots are simply disabled.
	var appCache cache.Cache
	if cfg.Redis.Addr != "" {
		rc := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(rootCtx); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		appCache = rc
	}

	// Init DB.
	dsn := cfg.DB.Path
	if cfg.DB.Driver == "postgres" {
		dsn = cfg.PostgresDSN()
	}
	db, err := gormdb.New(cfg.DB.Driver, dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}

	// Init repository and services.

	// Message store
	msgRepository := mesgRepo.NewRepository(db)
	if err := msgRepository.Init(rootCtx); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	// Metrics collector: fed by the request middleware and the ingestion
	// coordinator, rendered at /metrics.
	collector := metrics.NewCollector()

	// Ingestion + query services
	ingestSvc := service.NewIngestService(
		msgRepository,
		appCache,
		collector,
		cfg.Webhook.Secret,
		logger,
	)
	querySvc := service.NewQueryService(msgRepository)

	// Periodic stats reporter
	reporter := service.NewStatsReporter(msgRepository, appCache, logger, 2*cfg.Stats.ReportInterval)
	cron := scheduler.NewSchedulerService(
		reporter,
		cfg.Stats.ReportInterval,
		cfg.Stats.ReportTimeout,
		logger,
	)

	// HTTP dependencies & server wiring.

	// Handlers
	deps := routes.AppDeps{
		Home:    handler.NewHomeHandler(),
		Health:  handler.NewHealthHandler(msgRepository, cfg.Webhook.Secret != ""),
		Webhook: handler.NewWebhookHandler(ingestSvc, logger),
		Message: handler.NewMessageHandler(querySvc),
		Metrics: handler.NewMetricsHandler(collector),
	}

	// Init Server
	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps, middleware.RequestLogger(logger, collector))

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the HTTP server in a separate goroutine so we can listen for signals.
	go func() {
		logger.Info("HTTP server listening", "addr", addr)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Start the stats reporter after everything is wired up.
	if err := cron.Start(); err != nil {
		log.Fatalf("stats reporter could not start: %v", err)
	}

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	logger.Info("shutdown signal received, starting graceful shutdown")

	// Give components some time to shut down cleanly.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the reporter (waits for an in-flight report to finish or time out).
	if err := cron.Stop(); err != nil {
		logger.Error("stats reporter did not stop cleanly", "error", err)
	}

	// Gracefully shut down the HTTP server.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped")
	}

	logger.Info("shutdown complete")
}

// newLogger builds the process-wide JSON logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN", "WARNING":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
