package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/smartpro/consultation-intake/internal/api/router"
	appconfig "github.com/smartpro/consultation-intake/internal/config"
	"github.com/smartpro/consultation-intake/internal/dedupe"
	"github.com/smartpro/consultation-intake/internal/intake"
	"github.com/smartpro/consultation-intake/internal/notify"
	"github.com/smartpro/consultation-intake/internal/observability/metrics"
	"github.com/smartpro/consultation-intake/internal/ratelimit"
	"github.com/smartpro/consultation-intake/internal/submissions"
	"github.com/smartpro/consultation-intake/internal/webhook"
	"github.com/smartpro/consultation-intake/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting consultation intake API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Guard caches: in-memory per instance by default, Redis when
	// duplicate suppression must hold across replicas.
	var submissionCache, webhookCallCache dedupe.Cache
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		submissionCache = dedupe.NewRedis(client, cfg.DuplicateWindow, "submission", logger)
		webhookCallCache = dedupe.NewRedis(client, cfg.IdempotencyWindow, "webhook", logger)
		logger.Info("using redis guard caches", "addr", cfg.RedisAddr)
	} else {
		memSubmissions := dedupe.NewMemory(cfg.DuplicateWindow, cfg.GuardCacheMaxSize)
		memWebhooks := dedupe.NewMemory(cfg.IdempotencyWindow, cfg.GuardCacheMaxSize)
		submissionCache = memSubmissions
		webhookCallCache = memWebhooks
		go sweepCaches(logger, memSubmissions, memWebhooks)
	}

	var store submissions.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = submissions.NewPostgresRepository(pool)
		logger.Info("submission persistence enabled")
	}

	var alerts *notify.AlertService
	if sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sender != nil && cfg.AlertEmail != "" {
		alerts = notify.NewAlertService(sender, cfg.AlertEmail, logger)
		logger.Info("webhook failure alerts enabled", "to", cfg.AlertEmail)
	}

	intakeHandler := intake.NewHandler(intake.HandlerConfig{
		Submissions:  submissionCache,
		WebhookCalls: webhookCallCache,
		Limiter:      ratelimit.NewSlidingWindow(cfg.RateLimitRequests, cfg.RateLimitWindow),
		Relay:        webhook.NewClient(cfg.MakeWebhookURL, cfg.WebhookTimeout, logger),
		Store:        store,
		Alerts:       alerts,
		Metrics:      metrics.NewIntakeMetrics(nil),
		Logger:       logger,
		Source:       cfg.WebhookSource,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		IntakeHandler:      intakeHandler,
		StatsHandler:       submissions.NewStatsHandler(store, logger),
		MetricsHandler:     promhttp.Handler(),
		AdminJWTSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// sweepCaches periodically evicts stale guard entries so warm instances
// do not grow without bound between submissions.
func sweepCaches(logger *logging.Logger, caches ...*dedupe.Memory) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		for _, c := range caches {
			_ = c.Sweep(context.Background(), now)
		}
		logger.Debug("guard caches swept")
	}
}
