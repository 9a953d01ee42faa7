package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memberclub-backend/internal/config"
	"memberclub-backend/internal/jobs"
	"memberclub-backend/internal/service"
	"memberclub-backend/internal/storage"
	"memberclub-backend/internal/system"
)

type countingClub struct {
	saves    atomic.Int32
	readOnly bool
}

func (c *countingClub) SaveAll(context.Context) storage.SaveReport {
	c.saves.Add(1)
	return storage.SaveReport{}
}

func (c *countingClub) Reload(context.Context) (system.LoadReport, error) {
	return system.LoadReport{}, nil
}

func (c *countingClub) LateRentals() []service.LateRental { return nil }

func (c *countingClub) ReadOnly() bool { return c.readOnly }

func TestScheduler(t *testing.T) {
	t.Run("Registers both jobs", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{Autosave: "@every 1m", OverdueReport: "0 0 8 * * *"}}
		s := NewScheduler(jobs.NewJobRunner(&countingClub{}, cfg))
		assert.Len(t, s.cron.Entries(), 2)
		assert.True(t, s.IsRunning())
	})

	t.Run("Invalid schedule is skipped", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{Autosave: "@every 1m", OverdueReport: "whenever"}}
		s := NewScheduler(jobs.NewJobRunner(&countingClub{}, cfg))
		assert.Len(t, s.cron.Entries(), 1)
	})

	t.Run("Read-only club has no autosave", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{Autosave: "@every 1s", OverdueReport: "0 0 8 * * *"}}
		club := &countingClub{readOnly: true}
		s := NewScheduler(jobs.NewJobRunner(club, cfg))
		assert.Len(t, s.cron.Entries(), 1)

		s.Start()
		time.Sleep(1500 * time.Millisecond)
		s.Stop()
		assert.Zero(t, club.saves.Load())
	})

	t.Run("Autosave fires on schedule", func(t *testing.T) {
		club := &countingClub{}
		cfg := &config.Config{Scheduler: config.SchedulerConfig{Autosave: "@every 1s", OverdueReport: "0 0 8 * * *"}}
		s := NewScheduler(jobs.NewJobRunner(club, cfg))

		s.Start()
		assert.Eventually(t, func() bool { return club.saves.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
		s.Stop()
	})
}
