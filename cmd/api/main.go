package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	firestoreadapter "github.com/couchcryptid/pothole-data-api/internal/adapter/firestore"
	httpadapter "github.com/couchcryptid/pothole-data-api/internal/adapter/http"
	"github.com/couchcryptid/pothole-data-api/internal/config"
	"github.com/couchcryptid/pothole-data-api/internal/fetcher"
	"github.com/couchcryptid/pothole-data-api/internal/observability"
)

func main() {
	// A .env file is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Firestore is initialized once and shared by every request.
	client, err := firestoreadapter.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize firestore", "error", err)
		os.Exit(1)
	}
	if cfg.FirestoreEmulatorHost != "" {
		logger.Info("using firestore emulator", "host", cfg.FirestoreEmulatorHost)
	}

	source := firestoreadapter.NewSource(client, cfg.FirestoreCollection)
	potholes := fetcher.New(source, logger, metrics, fetcher.WithTimeout(cfg.FetchTimeout))

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.CORSAllowedOrigins, potholes, potholes, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("pothole api started",
		"collection", cfg.FirestoreCollection,
		"fetch_timeout", cfg.FetchTimeout,
		"cors_origins", cfg.CORSAllowedOrigins,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := client.Close(); err != nil {
		logger.Error("firestore client close error", "error", err)
	}

	logger.Info("shutdown complete")
}
