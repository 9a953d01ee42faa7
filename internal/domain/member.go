package domain

import "strings"

type MembershipTier string

const (
	MembershipTierStandard MembershipTier = "STANDARD"
	MembershipTierStudent  MembershipTier = "STUDENT"
	MembershipTierPremium  MembershipTier = "PREMIUM"
)

func (t MembershipTier) Valid() bool {
	switch t {
	case MembershipTierStandard, MembershipTierStudent, MembershipTierPremium:
		return true
	}
	return false
}

// ParseMembershipTier accepts any casing of a known tier name.
func ParseMembershipTier(s string) (MembershipTier, bool) {
	t := MembershipTier(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

type Member struct {
	ID            int            `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	Tier          MembershipTier `json:"membershipLevel"`
	RentalHistory []string       `json:"rentalHistory"`
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// AddRental appends a rental id to the member's history.
func (m *Member) AddRental(rentalID string) {
	m.RentalHistory = append(m.RentalHistory, rentalID)
}

// Clone returns a deep copy of the member.
func (m *Member) Clone() *Member {
	c := *m
	c.RentalHistory = append([]string(nil), m.RentalHistory...)
	return &c
}
