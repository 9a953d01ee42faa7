package jobs

import (
	"context"

	"github.com/shopspring/decimal"

	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/storage"
)

// ReportOverdueRentals logs every active rental past its expected return
// with the advisory penalty it would carry now. Nothing is charged. A
// read-only club is reloaded first so the report reflects the latest save.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		if jr.club.ReadOnly() {
			ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
			defer cancel()
			if _, err := jr.club.Reload(ctx); err != nil {
				logger.Error("Failed to reload state for overdue report", "error", err)
				return
			}
		}

		late := jr.club.LateRentals()

		total := decimal.Zero
		for _, lr := range late {
			total = total.Add(lr.PenaltyFee)
			due := ""
			if lr.Rental.ExpectedReturnDate != nil {
				due = storage.FormatTime(*lr.Rental.ExpectedReturnDate)
			}
			logger.Info("Rental overdue",
				"rental_id", lr.Rental.ID,
				"member_id", lr.Rental.MemberID,
				"item_id", lr.Rental.ItemID,
				"expected_return", due,
				"hours_late", lr.HoursLate,
				"advisory_fee", lr.PenaltyFee.StringFixed(2))
		}

		logger.Info("Overdue rental report", "count", len(late), "advisory_total", total.StringFixed(2))
	})
}
