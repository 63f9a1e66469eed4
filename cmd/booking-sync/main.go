// cmd/booking-sync/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"booking-sync/internal/common/config"
	"booking-sync/internal/common/database"
	commonerrors "booking-sync/internal/common/errors"
	"booking-sync/internal/common/logger"
	"booking-sync/internal/engine/resolver"
	"booking-sync/internal/extraction"
	"booking-sync/internal/mailbox"
	"booking-sync/internal/store"
	syncer "booking-sync/internal/sync"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting booking sync...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("batchSize", cfg.Sync.BatchSize),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		zapLog.Info("metrics endpoint up", zap.String("address", cfg.Metrics.Address))
	}

	// --- Init MongoDB with retry ---
	storeAttempts := 1 + commonerrors.GetRetryCount(commonerrors.ErrCodeStoreConnectionFailed)
	var mongoClient *database.MongoClient
	err = retryWithBackoff(func() error {
		var err error
		mongoClient, err = database.NewMongo(ctx, cfg.Database.Mongo)
		if err != nil {
			return err
		}
		return mongoClient.Ping(ctx)
	}, storeAttempts, 2*time.Second, zapLog, "MongoDB connection")
	if err != nil {
		zapLog.Fatal("mongodb failed after retries", zap.Error(err))
	}
	defer mongoClient.Close(context.Background())
	zapLog.Info("MongoDB connected successfully")

	// --- Init Redis (optional dedupe cache) ---
	var dedupe *syncer.Dedupe
	if cfg.Database.Redis.Address != "" {
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err == nil && redisClient.Ping(ctx) == nil {
			dedupe = syncer.NewDedupe(redisClient.Client, cfg.Sync.SeenTTL())
			defer redisClient.Close()
			zapLog.Info("Redis connected successfully")
		} else {
			zapLog.Warn("redis unavailable, continuing without dedupe cache")
		}
	}

	// --- Init extraction oracle ---
	oracle, err := extraction.NewGeminiOracle(ctx, cfg.Extraction, log)
	if err != nil {
		zapLog.Fatal("extraction oracle init failed", zap.Error(err))
	}

	// --- Init mailbox with retry ---
	mailboxAttempts := 1 + commonerrors.GetRetryCount(commonerrors.ErrCodeMailboxConnectionFailed)
	var source *mailbox.IMAPSource
	err = retryWithBackoff(func() error {
		var err error
		source, err = mailbox.Connect(cfg.Mailbox, log)
		return err
	}, mailboxAttempts, 2*time.Second, zapLog, "Mailbox connection")
	if err != nil {
		zapLog.Fatal("mailbox failed after retries", zap.Error(err))
	}
	defer source.Close()
	zapLog.Info("Mailbox connected successfully")

	bookingStore := store.NewMongoStore(mongoClient.Client, cfg.Database.Mongo)
	orch := syncer.New(source, oracle, bookingStore, resolver.New(log), dedupe, log, cfg.Sync.BatchSize)

	report, err := orch.Run(ctx)
	if err != nil {
		zapLog.Fatal("sync pass failed", zap.Error(err))
	}

	if report.Errors > 0 {
		os.Exit(1)
	}
}
