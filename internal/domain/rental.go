package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

type RentalPeriod string

const (
	RentalPeriodHourly RentalPeriod = "HOURLY"
	RentalPeriodDaily  RentalPeriod = "DAILY"
)

// ParseRentalPeriod accepts any casing of HOURLY or DAILY.
func ParseRentalPeriod(s string) (RentalPeriod, bool) {
	p := RentalPeriod(strings.ToUpper(strings.TrimSpace(s)))
	return p, p == RentalPeriodHourly || p == RentalPeriodDaily
}

// MaxRentalSpan bounds the length of a single rental.
const MaxRentalSpan = 10 * 365 * 24 * time.Hour

func (p RentalPeriod) unit() time.Duration {
	if p == RentalPeriodHourly {
		return time.Hour
	}
	return 24 * time.Hour
}

// Span returns the wall-clock length of duration units of this period.
// Callers keep duration within MaxDuration.
func (p RentalPeriod) Span(duration int) time.Duration {
	return time.Duration(duration) * p.unit()
}

// MaxDuration is the largest duration whose Span fits in MaxRentalSpan.
func (p RentalPeriod) MaxDuration() int {
	return int(MaxRentalSpan / p.unit())
}

type Rental struct {
	ID                 string          `json:"rentalId"`
	MemberID           int             `json:"memberId"`
	ItemID             string          `json:"itemId"`
	StartDate          time.Time       `json:"startDate"`
	ExpectedReturnDate *time.Time      `json:"expectedReturnDate,omitempty"`
	EndDate            *time.Time      `json:"endDate,omitempty"`
	TotalCost          decimal.Decimal `json:"totalCost"`
	Status             RentalStatus    `json:"status"`
}

func (r *Rental) IsActive() bool {
	return r.Status == RentalStatusActive
}

// IsLate reports whether an active rental is past its expected return time.
func (r *Rental) IsLate(now time.Time) bool {
	if r.Status != RentalStatusActive || r.ExpectedReturnDate == nil {
		return false
	}
	return now.After(*r.ExpectedReturnDate)
}

// HoursLate returns whole hours past the expected return, never less than 1
// once the rental is late.
func (r *Rental) HoursLate(now time.Time) int64 {
	if !r.IsLate(now) {
		return 0
	}
	hours := int64(now.Sub(*r.ExpectedReturnDate) / time.Hour)
	if hours <= 0 {
		return 1
	}
	return hours
}

// PenaltyFee is the advisory late fee for item. It is never added to
// TotalCost.
func (r *Rental) PenaltyFee(item Item, now time.Time) decimal.Decimal {
	if item == nil || !r.IsLate(now) {
		return decimal.Zero
	}
	return decimal.NewFromInt(r.HoursLate(now)).Mul(item.Base().PricePerHour)
}

// DurationInDays is the number of whole days between start and end, or 0
// while the rental has not ended.
func (r *Rental) DurationInDays() int64 {
	if r.EndDate == nil {
		return 0
	}
	return int64(r.EndDate.Sub(r.StartDate) / (24 * time.Hour))
}

func (r *Rental) Clone() *Rental {
	c := *r
	if r.ExpectedReturnDate != nil {
		t := *r.ExpectedReturnDate
		c.ExpectedReturnDate = &t
	}
	if r.EndDate != nil {
		t := *r.EndDate
		c.EndDate = &t
	}
	return &c
}
