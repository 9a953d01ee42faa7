package jobs

import (
	"context"
	"fmt"
	"time"

	"memberclub-backend/internal/config"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/service"
	"memberclub-backend/internal/storage"
	"memberclub-backend/internal/system"
)

const (
	JobAutosave      = "autosave"
	JobOverdueReport = "overdue-report"
)

// Club is the part of the running system the jobs act on. A read-only club
// mirrors a store another process writes, so it is reloaded before each
// report and never saved.
type Club interface {
	SaveAll(ctx context.Context) storage.SaveReport
	Reload(ctx context.Context) (system.LoadReport, error)
	LateRentals() []service.LateRental
	ReadOnly() bool
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	club    Club
	config  *config.Config
	timeout time.Duration
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(club Club, cfg *config.Config) *JobRunner {
	return &JobRunner{
		club:    club,
		config:  cfg,
		timeout: 30 * time.Second,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName)
}

// Saves reports whether this runner owns the persisted state.
func (jr *JobRunner) Saves() bool {
	return !jr.club.ReadOnly()
}

// Run executes a job by name once
func (jr *JobRunner) Run(jobName string) error {
	switch {
	case jobName == JobAutosave && jr.Saves():
		jr.Autosave()
	case jobName == JobOverdueReport:
		jr.ReportOverdueRentals()
	default:
		return fmt.Errorf("unknown job: %q", jobName)
	}
	return nil
}

// JobNames lists the jobs Run accepts
func (jr *JobRunner) JobNames() []string {
	if jr.Saves() {
		return []string{JobAutosave, JobOverdueReport}
	}
	return []string{JobOverdueReport}
}
