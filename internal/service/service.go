package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"memberclub-backend/internal/domain"
)

type RentalLedger interface {
	RentItem(ctx context.Context, memberID int, itemID string, duration int, period domain.RentalPeriod) (*domain.Rental, error)
	ReturnItem(ctx context.Context, rentalID string) error
	CancelRental(ctx context.Context, rentalID string) error
	GetRental(rentalID string) (*domain.Rental, error)
	ActiveRentals() []*domain.Rental
	AllRentals() []*domain.Rental
	RentalsForMember(memberID int) []*domain.Rental
	LateRentals(now time.Time) []LateRental
	SetRentals(rentals []*domain.Rental) LoadSummary
	// Restore runs apply and SetRentals as one step under the ledger lock.
	Restore(apply func(), rentals []*domain.Rental) LoadSummary
	AddRental(rental *domain.Rental) error
	Snapshot() LedgerSnapshot
	// Exclusive runs fn while no ledger transaction is in flight.
	Exclusive(fn func() error) error
	Now() time.Time
}

type MembershipService interface {
	AddMember(ctx context.Context, input MemberInput) (*domain.Member, error)
	GetMember(id int) (*domain.Member, error)
	ListMembers() []*domain.Member
	UpdateTier(ctx context.Context, id int, tier domain.MembershipTier) (*domain.Member, error)
	UpdateDetails(ctx context.Context, id int, input MemberInput) (*domain.Member, error)
	RemoveMember(ctx context.Context, id int) error
	SearchByFirstName(query string) []*domain.Member
}

type InventoryService interface {
	AddItem(ctx context.Context, item domain.Item) (domain.Item, error)
	GetItem(id string) (domain.Item, error)
	ListItems() []domain.Item
	ListAvailable() []domain.Item
	RemoveItem(ctx context.Context, id string) error
	MarkBroken(ctx context.Context, id string) error
	MarkRepaired(ctx context.Context, id string) error
}

type AccountService interface {
	CreateAccount(ctx context.Context, username, password, firstName, lastName string) (*domain.Account, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
	RemoveAccount(ctx context.Context, username string) error
	ListAccounts() []*domain.Account
}

type RevenueService interface {
	Summary(now time.Time) RevenueSummary
}

// MemberInput carries the editable member fields.
type MemberInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Tier      domain.MembershipTier
}

// LateRental is an active rental past its expected return, with the
// advisory penalty it would carry at the time of the query.
type LateRental struct {
	Rental     *domain.Rental
	HoursLate  int64
	PenaltyFee decimal.Decimal
}

// LoadSummary reports what SetRentals did with a persisted batch.
type LoadSummary struct {
	Loaded       int
	Duplicates   []string
	MalformedIDs []string
	Resynced     []string
	Released     []string
	NextRentalID string
}

// LedgerSnapshot is a consistent copy of the ledger's collections.
type LedgerSnapshot struct {
	Items   []domain.Item
	Members []*domain.Member
	Rentals []*domain.Rental
}

type RevenueSummary struct {
	Booked            decimal.Decimal `json:"booked"`
	Realized          decimal.Decimal `json:"realized"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	AdvisoryPenalties decimal.Decimal `json:"advisory_penalties"`
	ActiveRentals     int             `json:"active_rentals"`
	CompletedRentals  int             `json:"completed_rentals"`
	CancelledRentals  int             `json:"cancelled_rentals"`
	LateRentals       int             `json:"late_rentals"`
}
