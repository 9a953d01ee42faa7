package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"memberclub-backend/internal/jobs"
	"memberclub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Full snapshot save, only where the state is owned
	if s.jobs.Saves() {
		if _, err := s.cron.AddFunc(cfg.Autosave, s.jobs.Autosave); err != nil {
			logger.Error("Failed to register Autosave job", "schedule", cfg.Autosave, "error", err)
		}
	}

	// Daily overdue report
	_, err := s.cron.AddFunc(cfg.OverdueReport, s.jobs.ReportOverdueRentals)
	if err != nil {
		logger.Error("Failed to register ReportOverdueRentals job", "schedule", cfg.OverdueReport, "error", err)
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any job is registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
