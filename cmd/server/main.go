package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "memberclub-backend/internal/api/http"
	"memberclub-backend/internal/config"
	"memberclub-backend/internal/jobs"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/scheduler"
	"memberclub-backend/internal/storage"
	"memberclub-backend/internal/system"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Member Club Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "storage", cfg.Storage.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize record store
	store, err := system.OpenRecordStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open record store", "error", err)
		log.Fatalf("Failed to open record store: %v", err)
	}

	// Load state
	club := system.New(storage.NewGateway(store), system.Options{BcryptCost: cfg.Accounts.BcryptCost})
	report, err := club.Load(ctx)
	if err != nil {
		store.Close()
		logger.Error("Failed to load state", "error", err)
		log.Fatalf("Failed to load state: %v", err)
	}
	logger.Info("State loaded",
		"items", report.Items,
		"members", report.Members,
		"rentals", report.Rentals.Loaded,
		"next_rental_id", report.Rentals.NextRentalID)

	// Start autosave and reports
	cronScheduler := scheduler.NewScheduler(jobs.NewJobRunner(club, cfg))
	club.AttachStopper(cronScheduler)
	cronScheduler.Start()

	// Set up HTTP server
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(club, cfg.API),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	final, err := club.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	if !final.OK() {
		logger.Warn("Final save incomplete", "batch_id", final.BatchID, "failed_collections", len(final.Failed()))
	}
	logger.Info("Server stopped. Goodbye!", "uptime", club.FormattedUptime())
}
