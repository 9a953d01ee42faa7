package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/idgen"
)

func validInput() MemberInput {
	return MemberInput{
		FirstName: "Lisa",
		LastName:  "Berg",
		Phone:     "0709876543",
		Email:     "lisa.berg@gmail.com",
		Tier:      domain.MembershipTierStudent,
	}
}

func TestValidateMember(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MemberInput)
		valid  bool
	}{
		{"Valid", func(*MemberInput) {}, true},
		{"Empty first name", func(in *MemberInput) { in.FirstName = "  " }, false},
		{"Empty last name", func(in *MemberInput) { in.LastName = "" }, false},
		{"Email without at sign", func(in *MemberInput) { in.Email = "lisa.berg" }, false},
		{"Empty phone", func(in *MemberInput) { in.Phone = "" }, false},
		{"Unknown tier", func(in *MemberInput) { in.Tier = "GOLD" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)
			err := ValidateMember(in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidMember)
			}
		})
	}
}

func TestMembershipService(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*ledgerFixture, MembershipService) {
		f := newLedgerFixture(t)
		ids := idgen.NewMemberSequence()
		ids.SetNext(4)
		return f, NewMembershipService(f.members, ids, f.ledger)
	}

	t.Run("AddMember assigns the next id", func(t *testing.T) {
		_, svc := newService(t)
		m, err := svc.AddMember(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, 4, m.ID)
		assert.Empty(t, m.RentalHistory)
		assert.Len(t, svc.ListMembers(), 4)

		m2, err := svc.AddMember(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, 5, m2.ID)
	})

	t.Run("AddMember rejects invalid input", func(t *testing.T) {
		_, svc := newService(t)
		in := validInput()
		in.Email = "nope"
		_, err := svc.AddMember(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidMember)
		assert.Len(t, svc.ListMembers(), 3)
	})

	t.Run("UpdateTier changes future pricing", func(t *testing.T) {
		f, svc := newService(t)
		m, err := svc.UpdateTier(ctx, 1, domain.MembershipTierPremium)
		require.NoError(t, err)
		assert.Equal(t, domain.MembershipTierPremium, m.Tier)

		rental, err := f.ledger.RentItem(ctx, 1, "TENT-001", 2, domain.RentalPeriodDaily)
		require.NoError(t, err)
		assert.True(t, money("350").Equal(rental.TotalCost))
	})

	t.Run("UpdateTier rejects unknown tier", func(t *testing.T) {
		_, svc := newService(t)
		_, err := svc.UpdateTier(ctx, 1, "GOLD")
		assert.ErrorIs(t, err, domain.ErrInvalidMember)
	})

	t.Run("UpdateDetails keeps rental history", func(t *testing.T) {
		f, svc := newService(t)
		_, err := f.ledger.RentItem(ctx, 2, "BAIT-001", 1, domain.RentalPeriodHourly)
		require.NoError(t, err)

		m, err := svc.UpdateDetails(ctx, 2, validInput())
		require.NoError(t, err)
		assert.Equal(t, "Lisa", m.FirstName)
		assert.Equal(t, []string{"RENT-001"}, m.RentalHistory)
	})

	t.Run("Missing member", func(t *testing.T) {
		_, svc := newService(t)
		_, err := svc.GetMember(42)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
		_, err = svc.UpdateTier(ctx, 42, domain.MembershipTierStudent)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
		assert.ErrorIs(t, svc.RemoveMember(ctx, 42), domain.ErrMemberNotFound)
	})

	t.Run("RemoveMember", func(t *testing.T) {
		_, svc := newService(t)
		require.NoError(t, svc.RemoveMember(ctx, 3))
		_, err := svc.GetMember(3)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})

	t.Run("SearchByFirstName is case insensitive", func(t *testing.T) {
		_, svc := newService(t)
		found := svc.SearchByFirstName("DAN")
		require.Len(t, found, 1)
		assert.Equal(t, 1, found[0].ID)

		assert.Len(t, svc.SearchByFirstName("er"), 2)
		assert.Empty(t, svc.SearchByFirstName("zz"))
	})
}
