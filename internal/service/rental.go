package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/idgen"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/pricing"
	"memberclub-backend/internal/repository"
)

type rentalLedger struct {
	mu      sync.Mutex
	items   repository.ItemCatalog
	members repository.MemberDirectory
	ids     *idgen.Sequence
	rentals []*domain.Rental
	byID    map[string]*domain.Rental
	clock   func() time.Time
	tracer  trace.Tracer
}

type LedgerOption func(*rentalLedger)

// WithClock replaces time.Now as the ledger's time source.
func WithClock(clock func() time.Time) LedgerOption {
	return func(l *rentalLedger) {
		l.clock = clock
	}
}

// WithRentalSequence shares an existing rental id sequence.
func WithRentalSequence(seq *idgen.Sequence) LedgerOption {
	return func(l *rentalLedger) {
		l.ids = seq
	}
}

func NewRentalLedger(items repository.ItemCatalog, members repository.MemberDirectory, opts ...LedgerOption) RentalLedger {
	l := &rentalLedger{
		items:   items,
		members: members,
		ids:     idgen.NewRentalSequence(),
		byID:    make(map[string]*domain.Rental),
		clock:   time.Now,
		tracer:  otel.Tracer("memberclub/ledger"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now is the ledger clock truncated to the persisted precision.
func (l *rentalLedger) Now() time.Time {
	return l.clock().Truncate(time.Second)
}

func (l *rentalLedger) RentItem(ctx context.Context, memberID int, itemID string, duration int, period domain.RentalPeriod) (*domain.Rental, error) {
	_, span := l.tracer.Start(ctx, "ledger.rent_item",
		trace.WithAttributes(
			attribute.Int("member.id", memberID),
			attribute.String("item.id", itemID),
			attribute.Int("duration", duration),
			attribute.String("period", string(period)),
		),
	)
	defer span.End()

	logger.EnterMethod("rentalLedger.RentItem", "memberID", memberID, "itemID", itemID, "duration", duration, "period", period)

	if period != domain.RentalPeriodHourly && period != domain.RentalPeriodDaily {
		return nil, refuse(span, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidRental, period))
	}
	if duration <= 0 {
		return nil, refuse(span, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidRental, duration))
	}
	if limit := period.MaxDuration(); duration > limit {
		return nil, refuse(span, fmt.Errorf("%w: duration %d exceeds %d %s periods", domain.ErrInvalidRental, duration, limit, period))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	member, ok := l.members.Get(memberID)
	if !ok {
		return nil, refuse(span, fmt.Errorf("%w: no member with id %d", domain.ErrMemberNotFound, memberID))
	}
	item, ok := l.items.Get(itemID)
	if !ok {
		return nil, refuse(span, fmt.Errorf("%w: no item with id %s", domain.ErrItemNotFound, itemID))
	}
	if item.Base().Status != domain.ItemStatusAvailable {
		return nil, refuse(span, fmt.Errorf("%w: %q is %s", domain.ErrItemNotAvailable, item.Base().Name, item.Base().Status))
	}

	cost := pricing.ForTier(member.Tier).Calculate(item, member, duration, period)
	start := l.Now()
	due := start.Add(period.Span(duration))

	rental := &domain.Rental{
		ID:                 l.ids.Next(),
		MemberID:           memberID,
		ItemID:             itemID,
		StartDate:          start,
		ExpectedReturnDate: &due,
		TotalCost:          cost,
		Status:             domain.RentalStatusActive,
	}

	l.items.SetStatus(itemID, domain.ItemStatusRented)
	l.members.AppendRental(memberID, rental.ID)
	l.append(rental)

	span.SetAttributes(attribute.String("rental.id", rental.ID), attribute.String("total_cost", cost.StringFixed(2)))
	logger.ExitMethod("rentalLedger.RentItem", "rentalID", rental.ID, "totalCost", cost.StringFixed(2))
	return rental.Clone(), nil
}

func (l *rentalLedger) ReturnItem(ctx context.Context, rentalID string) error {
	return l.close(ctx, "ledger.return_item", rentalID, domain.RentalStatusCompleted)
}

func (l *rentalLedger) CancelRental(ctx context.Context, rentalID string) error {
	return l.close(ctx, "ledger.cancel_rental", rentalID, domain.RentalStatusCancelled)
}

// close moves an active rental to a terminal status and releases its item.
// An item that no longer exists is skipped.
func (l *rentalLedger) close(ctx context.Context, spanName, rentalID string, status domain.RentalStatus) error {
	_, span := l.tracer.Start(ctx, spanName, trace.WithAttributes(attribute.String("rental.id", rentalID)))
	defer span.End()

	l.mu.Lock()
	defer l.mu.Unlock()

	rental, ok := l.byID[rentalID]
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrRentalNotFound, rentalID)
		span.RecordError(err)
		return err
	}
	if rental.Status != domain.RentalStatusActive {
		err := fmt.Errorf("%w: %s is %s", domain.ErrRentalNotActive, rentalID, rental.Status)
		span.RecordError(err)
		return err
	}

	rental.Status = status
	if status == domain.RentalStatusCompleted {
		end := l.Now()
		rental.EndDate = &end
	}
	if !l.items.SetStatus(rental.ItemID, domain.ItemStatusAvailable) {
		logger.Debug("Item of closed rental no longer exists", "rental_id", rentalID, "item_id", rental.ItemID)
	}

	logger.Info("Rental closed", "rental_id", rentalID, "status", status, "item_id", rental.ItemID)
	return nil
}

func (l *rentalLedger) GetRental(rentalID string) (*domain.Rental, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rental, ok := l.byID[rentalID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRentalNotFound, rentalID)
	}
	return rental.Clone(), nil
}

func (l *rentalLedger) ActiveRentals() []*domain.Rental {
	return l.filter(func(r *domain.Rental) bool { return r.IsActive() })
}

func (l *rentalLedger) AllRentals() []*domain.Rental {
	return l.filter(func(*domain.Rental) bool { return true })
}

func (l *rentalLedger) RentalsForMember(memberID int) []*domain.Rental {
	return l.filter(func(r *domain.Rental) bool { return r.MemberID == memberID })
}

func (l *rentalLedger) LateRentals(now time.Time) []LateRental {
	var late []LateRental
	for _, r := range l.filter(func(r *domain.Rental) bool { return r.IsLate(now) }) {
		item, _ := l.items.Get(r.ItemID)
		late = append(late, LateRental{
			Rental:     r,
			HoursLate:  r.HoursLate(now),
			PenaltyFee: r.PenaltyFee(item, now),
		})
	}
	return late
}

// SetRentals replaces the ledger with a persisted batch. The first
// occurrence of an id wins, the id counter restarts at max + 1 and item
// statuses are realigned with the active rentals.
func (l *rentalLedger) SetRentals(rentals []*domain.Rental) LoadSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setRentalsLocked(rentals)
}

// Restore runs apply and then SetRentals within a single hold of the ledger
// lock. apply repopulates the item and member stores and must not call back
// into the ledger.
func (l *rentalLedger) Restore(apply func(), rentals []*domain.Rental) LoadSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	if apply != nil {
		apply()
	}
	return l.setRentalsLocked(rentals)
}

func (l *rentalLedger) setRentalsLocked(rentals []*domain.Rental) LoadSummary {
	var summary LoadSummary
	l.rentals = nil
	l.byID = make(map[string]*domain.Rental, len(rentals))

	ids := make([]string, 0, len(rentals))
	for _, r := range rentals {
		if r == nil {
			continue
		}
		if _, dup := l.byID[r.ID]; dup {
			summary.Duplicates = append(summary.Duplicates, r.ID)
			continue
		}
		l.append(r.Clone())
		ids = append(ids, r.ID)
	}
	summary.Loaded = len(l.rentals)
	summary.MalformedIDs = l.ids.Recover(ids)
	for _, id := range summary.MalformedIDs {
		logger.Warn("Ignoring malformed rental id for counter recovery", "rental_id", id)
	}

	summary.Resynced, summary.Released = l.resyncItems()
	summary.NextRentalID = fmt.Sprintf("%s%0*d", idgen.RentalPrefix, idgen.DefaultWidth, l.ids.Peek())

	if len(summary.Duplicates) > 0 {
		logger.Warn("Dropped duplicate rentals", "count", len(summary.Duplicates), "ids", summary.Duplicates)
	}
	logger.Info("Rentals loaded", "count", summary.Loaded, "next_id", summary.NextRentalID,
		"resynced", len(summary.Resynced), "released", len(summary.Released))
	return summary
}

// resyncItems marks items of active rentals as RENTED and frees RENTED items
// that no active rental references.
func (l *rentalLedger) resyncItems() (resynced, released []string) {
	active := make(map[string]string)
	for _, r := range l.rentals {
		if !r.IsActive() {
			continue
		}
		if other, seen := active[r.ItemID]; seen {
			logger.Warn("Item has more than one active rental", "item_id", r.ItemID, "rental_id", r.ID, "other_rental_id", other)
			continue
		}
		active[r.ItemID] = r.ID
	}

	for _, item := range l.items.All() {
		id := item.Base().ID
		_, rented := active[id]
		switch {
		case rented && item.Base().Status != domain.ItemStatusRented:
			l.items.SetStatus(id, domain.ItemStatusRented)
			resynced = append(resynced, id)
		case !rented && item.Base().Status == domain.ItemStatusRented:
			l.items.SetStatus(id, domain.ItemStatusAvailable)
			released = append(released, id)
		}
	}
	return resynced, released
}

// AddRental ingests one persisted rental.
func (l *rentalLedger) AddRental(rental *domain.Rental) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.byID[rental.ID]; dup {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateRental, rental.ID)
	}
	l.append(rental.Clone())
	if rental.IsActive() {
		l.items.SetStatus(rental.ItemID, domain.ItemStatusRented)
	}
	if !l.ids.Observe(rental.ID) {
		logger.Warn("Could not parse rental id", "rental_id", rental.ID)
	}
	return nil
}

func (l *rentalLedger) Snapshot() LedgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := LedgerSnapshot{
		Items:   l.items.All(),
		Members: l.members.All(),
		Rentals: make([]*domain.Rental, 0, len(l.rentals)),
	}
	for _, r := range l.rentals {
		snap.Rentals = append(snap.Rentals, r.Clone())
	}
	return snap
}

func (l *rentalLedger) Exclusive(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// refuse records a rejected rent request at WARN.
func refuse(span trace.Span, err error) error {
	span.RecordError(err)
	logger.Warn("Rental request refused", "method", "rentalLedger.RentItem", "error", err)
	return err
}

func (l *rentalLedger) append(r *domain.Rental) {
	l.rentals = append(l.rentals, r)
	l.byID[r.ID] = r
}

func (l *rentalLedger) filter(keep func(*domain.Rental) bool) []*domain.Rental {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.Rental
	for _, r := range l.rentals {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}
