package service

import (
	"context"
	"fmt"
	"strings"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/idgen"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/repository"
)

type inventoryService struct {
	items  repository.ItemCatalog
	ids    *idgen.ItemSequences
	ledger RentalLedger
}

func NewInventoryService(items repository.ItemCatalog, ids *idgen.ItemSequences, ledger RentalLedger) InventoryService {
	return &inventoryService{items: items, ids: ids, ledger: ledger}
}

// AddItem issues an id for the item's kind and stores it as AVAILABLE.
func (s *inventoryService) AddItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	base := item.Base()
	if strings.TrimSpace(base.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidItem)
	}
	if !base.PricePerDay.IsPositive() || !base.PricePerHour.IsPositive() {
		return nil, fmt.Errorf("%w: prices must be positive", domain.ErrInvalidItem)
	}

	id, err := s.ids.Next(item.Kind())
	if err != nil {
		return nil, err
	}
	stored := domain.CloneItem(item)
	stored.Base().ID = id
	stored.Base().Status = domain.ItemStatusAvailable
	s.items.Put(stored)

	logger.InfoContext(ctx, "Item added", "item_id", id, "type", item.Kind())
	return stored, nil
}

func (s *inventoryService) GetItem(id string) (domain.Item, error) {
	item, ok := s.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return item, nil
}

func (s *inventoryService) ListItems() []domain.Item {
	return s.items.All()
}

func (s *inventoryService) ListAvailable() []domain.Item {
	var out []domain.Item
	for _, item := range s.items.All() {
		if item.Base().IsAvailable() {
			out = append(out, item)
		}
	}
	return out
}

func (s *inventoryService) RemoveItem(ctx context.Context, id string) error {
	return s.ledger.Exclusive(func() error {
		item, ok := s.items.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		if item.Base().Status == domain.ItemStatusRented {
			return fmt.Errorf("%w: %s", domain.ErrItemRented, id)
		}
		s.items.Remove(id)
		logger.InfoContext(ctx, "Item removed", "item_id", id)
		return nil
	})
}

func (s *inventoryService) MarkBroken(ctx context.Context, id string) error {
	return s.setCondition(ctx, id, domain.ItemStatusBroken)
}

func (s *inventoryService) MarkRepaired(ctx context.Context, id string) error {
	return s.setCondition(ctx, id, domain.ItemStatusAvailable)
}

// setCondition toggles between AVAILABLE and BROKEN. Rented items keep
// their status until returned.
func (s *inventoryService) setCondition(ctx context.Context, id string, status domain.ItemStatus) error {
	return s.ledger.Exclusive(func() error {
		item, ok := s.items.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		if item.Base().Status == domain.ItemStatusRented {
			return fmt.Errorf("%w: %s", domain.ErrItemRented, id)
		}
		s.items.SetStatus(id, status)
		logger.InfoContext(ctx, "Item status changed", "item_id", id, "status", status)
		return nil
	})
}
