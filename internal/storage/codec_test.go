package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-backend/internal/domain"
)

func TestItemCodec_Discriminator(t *testing.T) {
	boat := &domain.MotorBoat{
		ItemBase: domain.ItemBase{
			ID:           "MBOAT-001",
			Name:         "Speedster 2000",
			PricePerDay:  decimal.NewFromInt(2000),
			PricePerHour: decimal.NewFromInt(400),
			Status:       domain.ItemStatusRented,
			Year:         2024,
			Color:        "RED",
		},
		WaterVehicle: domain.WaterVehicle{Material: "FIBERGLASS", Weight: 800, Brand: "Yamaha", Capacity: 6, Length: 6.5},
		BoatSpecs:    domain.BoatSpecs{HasFishFinder: true, MaxSpeed: 25},
		EnginePower:  150,
		FuelType:     "GASOLINE",
	}

	raw, err := EncodeItem(boat)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "MotorBoat", fields["type"])
	assert.Equal(t, "MBOAT-001", fields["id"])
	assert.Equal(t, true, fields["hasFishFinder"])

	decoded, err := DecodeItem(raw)
	require.NoError(t, err)
	got, ok := decoded.(*domain.MotorBoat)
	require.True(t, ok, "decoded %T", decoded)
	assert.Equal(t, 150, got.EnginePower)
	assert.Equal(t, 6, got.Capacity)
	assert.True(t, got.PricePerHour.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, domain.ItemStatusRented, got.Status)
}

func TestDecodeItem_Errors(t *testing.T) {
	t.Run("Missing type", func(t *testing.T) {
		_, err := DecodeItem(json.RawMessage(`{"id":"TENT-001"}`))
		assert.Error(t, err)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := DecodeItem(json.RawMessage(`{"type":"Canoe","id":"CAN-001"}`))
		assert.Error(t, err)
	})

	t.Run("Numeric prices and default status", func(t *testing.T) {
		item, err := DecodeItem(json.RawMessage(`{"type":"Tent","id":"TENT-009","pricePerDay":250.0,"pricePerHour":50.0}`))
		require.NoError(t, err)
		assert.Equal(t, domain.ItemStatusAvailable, item.Base().Status)
		assert.True(t, item.Base().PricePerDay.Equal(decimal.NewFromInt(250)))
	})
}

func TestRentalCodec_Timestamps(t *testing.T) {
	start := time.Date(2026, 5, 17, 8, 30, 15, 0, time.Local)
	due := start.Add(48 * time.Hour)
	r := &domain.Rental{
		ID:                 "RENT-007",
		MemberID:           2,
		ItemID:             "TENT-001",
		StartDate:          start,
		ExpectedReturnDate: &due,
		TotalCost:          decimal.RequireFromString("400.00"),
		Status:             domain.RentalStatusActive,
	}

	raw, err := EncodeRental(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"startDate":"2026-05-17T08:30:15"`)
	assert.Contains(t, string(raw), `"endDate":null`)

	got, err := DecodeRental(raw)
	require.NoError(t, err)
	assert.True(t, got.StartDate.Equal(start))
	require.NotNil(t, got.ExpectedReturnDate)
	assert.True(t, got.ExpectedReturnDate.Equal(due))
	assert.Nil(t, got.EndDate)
	assert.True(t, got.TotalCost.Equal(r.TotalCost))
}

func TestFormatTime_HostLocal(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	at := time.Date(2026, 5, 17, 8, 30, 15, 0, tokyo)

	s := FormatTime(at)
	assert.Equal(t, at.In(time.Local).Format(TimeLayout), s)

	got, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(at))
	assert.Equal(t, time.Local, got.Location())
}

func TestDecodeRental_Errors(t *testing.T) {
	_, err := DecodeRental(json.RawMessage(`{"rentalId":"RENT-001","startDate":"17/05/2026"}`))
	assert.Error(t, err)

	_, err = DecodeRental(json.RawMessage(`{"startDate":"2026-05-17T08:30:15"}`))
	assert.Error(t, err)

	r, err := DecodeRental(json.RawMessage(`{"rentalId":"RENT-002","startDate":"2026-05-17T08:30:15","totalCost":120}`))
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusActive, r.Status)
}

func TestMemberCodec(t *testing.T) {
	raw, err := EncodeMember(&domain.Member{ID: 3, FirstName: "Anders", Tier: domain.MembershipTierPremium})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"membershipLevel":"PREMIUM"`)
	assert.Contains(t, string(raw), `"rentalHistory":[]`)

	_, err = DecodeMember(json.RawMessage(`{"id":0}`))
	assert.Error(t, err)
}
