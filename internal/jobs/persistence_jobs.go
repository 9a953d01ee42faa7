package jobs

import (
	"context"

	"memberclub-backend/internal/logger"
)

// Autosave writes a full snapshot. A failed collection is logged and the
// next tick tries again.
func (jr *JobRunner) Autosave() {
	jr.runWithRecovery("Autosave", func() {
		if !jr.Saves() {
			logger.Warn("Autosave skipped on read-only club")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		report := jr.club.SaveAll(ctx)
		if !report.OK() {
			logger.Warn("Autosave incomplete",
				"batch_id", report.BatchID,
				"failed_collections", len(report.Failed()),
				"duration", report.Duration)
			return
		}
		logger.Debug("Autosave finished", "batch_id", report.BatchID, "duration", report.Duration)
	})
}
