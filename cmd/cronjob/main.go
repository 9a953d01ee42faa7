package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

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
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'overdue-report')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Member Club Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()
	store, err := system.OpenRecordStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open record store", "error", err)
		log.Fatalf("Failed to open record store: %v", err)
	}

	// The server owns the persisted state; this process only reads it.
	club := system.New(storage.NewGateway(store), system.Options{BcryptCost: cfg.Accounts.BcryptCost, ReadOnly: true})
	if _, err := club.Load(ctx); err != nil {
		store.Close()
		logger.Error("Failed to load state", "error", err)
		log.Fatalf("Failed to load state: %v", err)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(club, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.Run(*runOnce); err != nil {
			logger.Error("Unknown job name", "job", *runOnce)
			fmt.Printf("Available jobs:\n")
			for _, name := range jobRunner.JobNames() {
				fmt.Printf("  - %s\n", name)
			}
			store.Close()
			os.Exit(1)
		}
		if err := store.Close(); err != nil {
			logger.Error("Failed to close record store", "error", err)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)
	club.AttachStopper(cronScheduler)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	if _, err := club.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
