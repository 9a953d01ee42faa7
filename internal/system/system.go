package system

import (
	"context"
	"fmt"
	"sync"
	"time"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/idgen"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/repository"
	"memberclub-backend/internal/repository/memory"
	"memberclub-backend/internal/service"
	"memberclub-backend/internal/storage"
)

// Stopper is a background component that must halt before the final save.
type Stopper interface {
	Stop()
}

type Options struct {
	// BcryptCost is passed to the account service. Zero selects the default.
	BcryptCost int
	Clock      func() time.Time
	// ReadOnly mirrors a store that another process owns. Nothing is seeded
	// or written, including at shutdown.
	ReadOnly bool
}

// LoadReport describes what Load found and what it seeded.
type LoadReport struct {
	Accounts int
	Items    int
	Members  int
	Seeded   []storage.Collection
	Rentals  service.LoadSummary
}

// Status is a point-in-time view of the running system.
type Status struct {
	Uptime          string     `json:"uptime"`
	StartedAt       time.Time  `json:"started_at"`
	Items           int        `json:"items"`
	AvailableItems  int        `json:"available_items"`
	Members         int        `json:"members"`
	Rentals         int        `json:"rentals"`
	ActiveRentals   int        `json:"active_rentals"`
	LastSaveAt      *time.Time `json:"last_save_at,omitempty"`
	LastSaveBatchID string     `json:"last_save_batch_id,omitempty"`
	LastSaveOK      *bool      `json:"last_save_ok,omitempty"`
}

// ClubSystem owns the stores, sequences and services and moves state
// between them and the persistence gateway.
type ClubSystem struct {
	gateway   *storage.Gateway
	catalog   repository.ItemCatalog
	directory repository.MemberDirectory
	accounts  repository.AccountStore

	rentalIDs *idgen.Sequence
	memberIDs *idgen.MemberSequence
	itemIDs   *idgen.ItemSequences

	Ledger    service.RentalLedger
	Members   service.MembershipService
	Inventory service.InventoryService
	Accounts  service.AccountService
	Revenue   service.RevenueService

	saveMu     sync.Mutex
	lastSave   *storage.SaveReport
	lastSaveAt time.Time

	stopMu   sync.Mutex
	stoppers []Stopper
	closed   bool

	opts    Options
	clock   func() time.Time
	started time.Time
}

func New(gateway *storage.Gateway, opts Options) *ClubSystem {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	s := &ClubSystem{
		gateway:   gateway,
		catalog:   memory.NewItemCatalog(),
		directory: memory.NewMemberDirectory(),
		accounts:  memory.NewAccountStore(),
		rentalIDs: idgen.NewRentalSequence(),
		memberIDs: idgen.NewMemberSequence(),
		itemIDs:   idgen.NewItemSequences(),
		opts:      opts,
		clock:     clock,
		started:   clock(),
	}

	s.Ledger = service.NewRentalLedger(s.catalog, s.directory,
		service.WithClock(clock),
		service.WithRentalSequence(s.rentalIDs),
	)
	s.Members = service.NewMembershipService(s.directory, s.memberIDs, s.Ledger)
	s.Inventory = service.NewInventoryService(s.catalog, s.itemIDs, s.Ledger)
	s.Accounts = service.NewAccountService(s.accounts, opts.BcryptCost)
	s.Revenue = service.NewRevenueService(s.Ledger, s.catalog)
	return s
}

// AttachStopper registers a component that Shutdown halts before the
// final save.
func (s *ClubSystem) AttachStopper(st Stopper) {
	s.stopMu.Lock()
	s.stoppers = append(s.stoppers, st)
	s.stopMu.Unlock()
}

// Load populates the system from the gateway in dependency order:
// accounts, items, members, then rentals. Empty collections are seeded and
// written back unless the system is read-only.
func (s *ClubSystem) Load(ctx context.Context) (LoadReport, error) {
	logger.EnterMethod("ClubSystem.Load")
	var report LoadReport

	seeded, err := s.loadAccounts(ctx)
	if err != nil {
		logger.ExitMethodWithError("ClubSystem.Load", err)
		return report, err
	}
	if seeded {
		report.Seeded = append(report.Seeded, storage.CollectionAccounts)
	}

	if seeded, err = s.loadItems(ctx); err != nil {
		logger.ExitMethodWithError("ClubSystem.Load", err)
		return report, err
	}
	if seeded {
		report.Seeded = append(report.Seeded, storage.CollectionItems)
	}

	if seeded, err = s.loadMembers(ctx); err != nil {
		logger.ExitMethodWithError("ClubSystem.Load", err)
		return report, err
	}
	if seeded {
		report.Seeded = append(report.Seeded, storage.CollectionMembers)
	}

	report.Rentals = s.Ledger.SetRentals(s.gateway.LoadRentals(ctx))
	report.Accounts = s.accounts.Count()
	report.Items = s.catalog.Count()
	report.Members = s.directory.Count()

	logger.ExitMethod("ClubSystem.Load",
		"accounts", report.Accounts,
		"items", report.Items,
		"members", report.Members,
		"rentals", report.Rentals.Loaded,
		"seeded", report.Seeded,
	)
	return report, nil
}

func (s *ClubSystem) loadAccounts(ctx context.Context) (bool, error) {
	loaded := s.gateway.LoadAccounts(ctx)
	for _, a := range loaded {
		s.accounts.Put(a)
	}
	if len(loaded) > 0 || s.opts.ReadOnly {
		return false, nil
	}

	for _, a := range defaultAccounts {
		if _, err := s.Accounts.CreateAccount(ctx, a.username, a.password, a.firstName, a.lastName); err != nil {
			return false, fmt.Errorf("failed to seed account %s: %w", a.username, err)
		}
	}
	if res := s.gateway.SaveAccounts(ctx, s.accounts.All()); !res.OK() {
		logger.Error("Failed to save seeded accounts", "error", res.Err)
	}
	logger.Info("Seeded default accounts", "count", len(defaultAccounts))
	return true, nil
}

func (s *ClubSystem) loadItems(ctx context.Context) (bool, error) {
	loaded := s.gateway.LoadItems(ctx)
	for _, item := range loaded {
		s.catalog.Put(item)
	}
	s.itemIDs.Recover(loaded)
	if len(loaded) > 0 || s.opts.ReadOnly {
		return false, nil
	}

	for _, item := range demoCatalog() {
		if _, err := s.Inventory.AddItem(ctx, item); err != nil {
			return false, fmt.Errorf("failed to seed item %q: %w", item.Base().Name, err)
		}
	}
	if res := s.gateway.SaveItems(ctx, s.catalog.All()); !res.OK() {
		logger.Error("Failed to save seeded items", "error", res.Err)
	}
	logger.Info("Seeded demo catalog", "count", s.catalog.Count())
	return true, nil
}

func (s *ClubSystem) loadMembers(ctx context.Context) (bool, error) {
	loaded := s.gateway.LoadMembers(ctx)
	highest := 0
	for _, m := range loaded {
		s.directory.Put(m)
		if m.ID > highest {
			highest = m.ID
		}
	}
	s.memberIDs.SetNext(highest + 1)
	if len(loaded) > 0 || s.opts.ReadOnly {
		return false, nil
	}

	for _, in := range demoMembers {
		if _, err := s.Members.AddMember(ctx, in); err != nil {
			return false, fmt.Errorf("failed to seed member %s %s: %w", in.FirstName, in.LastName, err)
		}
	}
	if res := s.gateway.SaveMembers(ctx, s.directory.All()); !res.OK() {
		logger.Error("Failed to save seeded members", "error", res.Err)
	}
	logger.Info("Seeded demo members", "count", s.directory.Count())
	return true, nil
}

// SaveAll writes every collection as one batch. Concurrent calls are
// serialised; failures are reported in the returned SaveReport. A read-only
// system writes nothing and reports storage.ErrReadOnly per collection.
func (s *ClubSystem) SaveAll(ctx context.Context) storage.SaveReport {
	if s.opts.ReadOnly {
		var report storage.SaveReport
		for _, c := range storage.Collections() {
			report.Results = append(report.Results, storage.SaveResult{Collection: c, Err: storage.ErrReadOnly})
		}
		logger.Warn("Save skipped on read-only system")
		return report
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.saveLocked(ctx)
}

func (s *ClubSystem) ReadOnly() bool {
	return s.opts.ReadOnly
}

func (s *ClubSystem) saveLocked(ctx context.Context) storage.SaveReport {
	snap := s.Ledger.Snapshot()
	report := s.gateway.SaveSnapshot(ctx, storage.Snapshot{
		Accounts: s.accounts.All(),
		Items:    snap.Items,
		Members:  snap.Members,
		Rentals:  snap.Rentals,
	})

	s.lastSave = &report
	s.lastSaveAt = s.clock()
	if report.OK() {
		logger.Info("Saved all collections", "batch_id", report.BatchID, "duration", report.Duration)
	}
	return report
}

// Reload replaces in-memory state with what the gateway holds. The new state
// is loaded into a detached system and swapped in under the ledger lock, so
// no rental runs against partially loaded stores.
func (s *ClubSystem) Reload(ctx context.Context) (LoadReport, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	logger.Info("Reloading state from storage")
	staged := New(s.gateway, s.opts)
	report, err := staged.Load(ctx)
	if err != nil {
		return LoadReport{}, err
	}

	accounts := staged.accounts.All()
	items := staged.catalog.All()
	members := staged.directory.All()
	rentals := staged.Ledger.AllRentals()

	s.Ledger.Restore(func() {
		s.accounts.Clear()
		for _, a := range accounts {
			s.accounts.Put(a)
		}
		s.catalog.Clear()
		for _, item := range items {
			s.catalog.Put(item)
		}
		s.itemIDs.Recover(items)
		s.directory.Clear()
		for _, m := range members {
			s.directory.Put(m)
		}
		s.memberIDs.SetNext(staged.memberIDs.Peek())
	}, rentals)

	logger.Info("State reloaded", "items", report.Items, "members", report.Members, "rentals", report.Rentals.Loaded)
	return report, nil
}

// Shutdown halts attached components, performs a final save and releases
// the record store. A read-only system skips the save. Calls after the
// first return an empty report.
func (s *ClubSystem) Shutdown(ctx context.Context) (storage.SaveReport, error) {
	s.stopMu.Lock()
	if s.closed {
		s.stopMu.Unlock()
		return storage.SaveReport{}, nil
	}
	s.closed = true
	stoppers := s.stoppers
	s.stopMu.Unlock()

	for _, st := range stoppers {
		st.Stop()
	}

	var report storage.SaveReport
	if !s.opts.ReadOnly {
		report = s.SaveAll(ctx)
		if !report.OK() {
			logger.Error("Final save incomplete", "batch_id", report.BatchID, "failed", len(report.Failed()))
		}
	}
	if err := s.gateway.Close(); err != nil {
		return report, fmt.Errorf("failed to close record store: %w", err)
	}
	logger.Info("Club system shut down", "uptime", s.FormattedUptime())
	return report, nil
}

func (s *ClubSystem) Uptime() time.Duration {
	return s.clock().Sub(s.started)
}

func (s *ClubSystem) FormattedUptime() string {
	return FormatUptime(s.Uptime())
}

// FormatUptime renders d as HH:MM:SS. Hours are not wrapped at 24.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

func (s *ClubSystem) Status() Status {
	st := Status{
		Uptime:    s.FormattedUptime(),
		StartedAt: s.started,
		Members:   s.directory.Count(),
	}
	for _, item := range s.catalog.All() {
		st.Items++
		if item.Base().Status == domain.ItemStatusAvailable {
			st.AvailableItems++
		}
	}
	for _, r := range s.Ledger.AllRentals() {
		st.Rentals++
		if r.IsActive() {
			st.ActiveRentals++
		}
	}

	s.saveMu.Lock()
	if s.lastSave != nil {
		at := s.lastSaveAt
		ok := s.lastSave.OK()
		st.LastSaveAt = &at
		st.LastSaveBatchID = s.lastSave.BatchID
		st.LastSaveOK = &ok
	}
	s.saveMu.Unlock()
	return st
}

// LateRentals lists the active rentals past their expected return as of now.
func (s *ClubSystem) LateRentals() []service.LateRental {
	return s.Ledger.LateRentals(s.Ledger.Now())
}
