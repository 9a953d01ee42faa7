package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/idgen"
)

func TestInventoryService(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*ledgerFixture, InventoryService) {
		f := newLedgerFixture(t)
		ids := idgen.NewItemSequences()
		ids.Recover(f.items.All())
		return f, NewInventoryService(f.items, ids, f.ledger)
	}

	t.Run("AddItem issues a kind prefixed id", func(t *testing.T) {
		_, svc := newService(t)
		item, err := svc.AddItem(ctx, &domain.Tent{
			ItemBase: domain.ItemBase{Name: "Arctic Expedition 4P", PricePerDay: money("600"), PricePerHour: money("120"), Status: domain.ItemStatusBroken},
			Capacity: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, "TENT-002", item.Base().ID)
		assert.Equal(t, domain.ItemStatusAvailable, item.Base().Status)

		got, err := svc.GetItem("TENT-002")
		require.NoError(t, err)
		assert.Equal(t, 4, got.(*domain.Tent).Capacity)

		lantern, err := svc.AddItem(ctx, &domain.Lantern{
			ItemBase: domain.ItemBase{Name: "LED Battery Light Pro", PricePerDay: money("80"), PricePerHour: money("15")},
		})
		require.NoError(t, err)
		assert.Equal(t, "LANT-001", lantern.Base().ID)
	})

	t.Run("AddItem validation", func(t *testing.T) {
		_, svc := newService(t)
		_, err := svc.AddItem(ctx, &domain.Lantern{ItemBase: domain.ItemBase{Name: "", PricePerDay: money("1"), PricePerHour: money("1")}})
		assert.ErrorIs(t, err, domain.ErrInvalidItem)
		_, err = svc.AddItem(ctx, &domain.Lantern{ItemBase: domain.ItemBase{Name: "Lamp", PricePerDay: money("0"), PricePerHour: money("1")}})
		assert.ErrorIs(t, err, domain.ErrInvalidItem)
	})

	t.Run("ListAvailable", func(t *testing.T) {
		_, svc := newService(t)
		available := svc.ListAvailable()
		assert.Len(t, available, 2)
		assert.Len(t, svc.ListItems(), 3)
	})

	t.Run("Broken and repaired", func(t *testing.T) {
		f, svc := newService(t)
		require.NoError(t, svc.MarkBroken(ctx, "TENT-001"))
		_, err := f.ledger.RentItem(ctx, 1, "TENT-001", 1, domain.RentalPeriodDaily)
		assert.ErrorIs(t, err, domain.ErrItemNotAvailable)

		require.NoError(t, svc.MarkRepaired(ctx, "TENT-001"))
		_, err = f.ledger.RentItem(ctx, 1, "TENT-001", 1, domain.RentalPeriodDaily)
		assert.NoError(t, err)
	})

	t.Run("Rented items are protected", func(t *testing.T) {
		f, svc := newService(t)
		_, err := f.ledger.RentItem(ctx, 1, "BAIT-001", 1, domain.RentalPeriodDaily)
		require.NoError(t, err)

		assert.ErrorIs(t, svc.MarkBroken(ctx, "BAIT-001"), domain.ErrItemRented)
		assert.ErrorIs(t, svc.RemoveItem(ctx, "BAIT-001"), domain.ErrItemRented)
		assert.Equal(t, domain.ItemStatusRented, f.itemStatus(t, "BAIT-001"))
	})

	t.Run("RemoveItem", func(t *testing.T) {
		_, svc := newService(t)
		require.NoError(t, svc.RemoveItem(ctx, "KAY-001"))
		_, err := svc.GetItem("KAY-001")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
		assert.ErrorIs(t, svc.RemoveItem(ctx, "KAY-001"), domain.ErrItemNotFound)
	})
}
