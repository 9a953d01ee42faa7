package service

import (
	"time"

	"github.com/shopspring/decimal"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/repository"
)

type revenueService struct {
	ledger RentalLedger
	items  repository.ItemCatalog
}

func NewRevenueService(ledger RentalLedger, items repository.ItemCatalog) RevenueService {
	return &revenueService{ledger: ledger, items: items}
}

// Summary aggregates rental costs. Penalties are reported separately and
// are not part of any total.
func (s *revenueService) Summary(now time.Time) RevenueSummary {
	sum := RevenueSummary{
		Booked:            decimal.Zero,
		Realized:          decimal.Zero,
		Outstanding:       decimal.Zero,
		AdvisoryPenalties: decimal.Zero,
	}
	for _, r := range s.ledger.AllRentals() {
		switch r.Status {
		case domain.RentalStatusCompleted:
			sum.CompletedRentals++
			sum.Booked = sum.Booked.Add(r.TotalCost)
			sum.Realized = sum.Realized.Add(r.TotalCost)
		case domain.RentalStatusActive:
			sum.ActiveRentals++
			sum.Booked = sum.Booked.Add(r.TotalCost)
			sum.Outstanding = sum.Outstanding.Add(r.TotalCost)
			if r.IsLate(now) {
				sum.LateRentals++
				item, _ := s.items.Get(r.ItemID)
				sum.AdvisoryPenalties = sum.AdvisoryPenalties.Add(r.PenaltyFee(item, now))
			}
		case domain.RentalStatusCancelled:
			sum.CancelledRentals++
		}
	}
	return sum
}
