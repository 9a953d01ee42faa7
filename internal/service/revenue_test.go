package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueService_Summary(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	svc := NewRevenueService(f.ledger, f.items)

	tent, err := f.ledger.RentItem(ctx, 1, "TENT-001", 2, "DAILY")
	require.NoError(t, err)
	bait, err := f.ledger.RentItem(ctx, 2, "BAIT-001", 1, "HOURLY")
	require.NoError(t, err)

	f.clock.Advance(4 * time.Hour)
	sum := svc.Summary(f.ledger.Now())
	assert.True(t, money("532").Equal(sum.Booked))
	assert.True(t, money("0").Equal(sum.Realized))
	assert.True(t, money("532").Equal(sum.Outstanding))
	assert.True(t, money("120").Equal(sum.AdvisoryPenalties))
	assert.Equal(t, 2, sum.ActiveRentals)
	assert.Equal(t, 1, sum.LateRentals)

	require.NoError(t, f.ledger.ReturnItem(ctx, bait.ID))
	require.NoError(t, f.ledger.CancelRental(ctx, tent.ID))

	sum = svc.Summary(f.ledger.Now())
	assert.True(t, money("32").Equal(sum.Booked))
	assert.True(t, money("32").Equal(sum.Realized))
	assert.True(t, sum.Outstanding.IsZero())
	assert.True(t, sum.AdvisoryPenalties.IsZero())
	assert.Equal(t, 1, sum.CompletedRentals)
	assert.Equal(t, 1, sum.CancelledRentals)
	assert.Equal(t, 0, sum.LateRentals)
}
