// Package pricing computes rental costs from item prices and membership tier.
package pricing

import (
	"github.com/shopspring/decimal"

	"memberclub-backend/internal/domain"
)

// Policy prices a rental for one membership tier.
type Policy interface {
	Tier() domain.MembershipTier
	Multiplier() decimal.Decimal
	Calculate(item domain.Item, member *domain.Member, duration int, period domain.RentalPeriod) decimal.Decimal
}

type tierPolicy struct {
	tier       domain.MembershipTier
	multiplier decimal.Decimal
}

var (
	Standard Policy = tierPolicy{tier: domain.MembershipTierStandard, multiplier: decimal.RequireFromString("1.0")}
	Student  Policy = tierPolicy{tier: domain.MembershipTierStudent, multiplier: decimal.RequireFromString("0.8")}
	Premium  Policy = tierPolicy{tier: domain.MembershipTierPremium, multiplier: decimal.RequireFromString("0.7")}
)

// ForTier selects the policy for a tier. Unknown or empty tiers are priced
// as standard.
func ForTier(tier domain.MembershipTier) Policy {
	switch tier {
	case domain.MembershipTierStudent:
		return Student
	case domain.MembershipTierPremium:
		return Premium
	default:
		return Standard
	}
}

// Calculate prices a rental with the policy matching the member's tier.
func Calculate(item domain.Item, member *domain.Member, duration int, period domain.RentalPeriod) decimal.Decimal {
	var tier domain.MembershipTier
	if member != nil {
		tier = member.Tier
	}
	return ForTier(tier).Calculate(item, member, duration, period)
}

// BaseCost is duration times the hourly or daily price.
func BaseCost(item domain.Item, duration int, period domain.RentalPeriod) decimal.Decimal {
	price := item.Base().PricePerDay
	if period == domain.RentalPeriodHourly {
		price = item.Base().PricePerHour
	}
	return price.Mul(decimal.NewFromInt(int64(duration)))
}

func (p tierPolicy) Tier() domain.MembershipTier { return p.tier }

func (p tierPolicy) Multiplier() decimal.Decimal { return p.multiplier }

func (p tierPolicy) Calculate(item domain.Item, _ *domain.Member, duration int, period domain.RentalPeriod) decimal.Decimal {
	return BaseCost(item, duration, period).Mul(p.multiplier).Round(2)
}
