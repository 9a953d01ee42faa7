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

type membershipService struct {
	members repository.MemberDirectory
	ids     *idgen.MemberSequence
	ledger  RentalLedger
}

func NewMembershipService(members repository.MemberDirectory, ids *idgen.MemberSequence, ledger RentalLedger) MembershipService {
	return &membershipService{members: members, ids: ids, ledger: ledger}
}

// ValidateMember checks the fields required of every member.
func ValidateMember(input MemberInput) error {
	switch {
	case strings.TrimSpace(input.FirstName) == "":
		return fmt.Errorf("%w: first name must not be empty", domain.ErrInvalidMember)
	case strings.TrimSpace(input.LastName) == "":
		return fmt.Errorf("%w: last name must not be empty", domain.ErrInvalidMember)
	case !strings.Contains(input.Email, "@"):
		return fmt.Errorf("%w: invalid email address %q", domain.ErrInvalidMember, input.Email)
	case strings.TrimSpace(input.Phone) == "":
		return fmt.Errorf("%w: phone number is required", domain.ErrInvalidMember)
	case !input.Tier.Valid():
		return fmt.Errorf("%w: unknown membership tier %q", domain.ErrInvalidMember, input.Tier)
	}
	return nil
}

func (s *membershipService) AddMember(ctx context.Context, input MemberInput) (*domain.Member, error) {
	if err := ValidateMember(input); err != nil {
		return nil, err
	}
	member := &domain.Member{
		ID:            s.ids.Next(),
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Phone:         strings.TrimSpace(input.Phone),
		Email:         strings.TrimSpace(input.Email),
		Tier:          input.Tier,
		RentalHistory: []string{},
	}
	s.members.Put(member)
	logger.InfoContext(ctx, "Member added", "member_id", member.ID, "tier", member.Tier)
	return member, nil
}

func (s *membershipService) GetMember(id int) (*domain.Member, error) {
	m, ok := s.members.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: no member with id %d", domain.ErrMemberNotFound, id)
	}
	return m, nil
}

func (s *membershipService) ListMembers() []*domain.Member {
	return s.members.All()
}

func (s *membershipService) UpdateTier(ctx context.Context, id int, tier domain.MembershipTier) (*domain.Member, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: unknown membership tier %q", domain.ErrInvalidMember, tier)
	}
	return s.modify(ctx, id, func(m *domain.Member) {
		m.Tier = tier
	})
}

func (s *membershipService) UpdateDetails(ctx context.Context, id int, input MemberInput) (*domain.Member, error) {
	if err := ValidateMember(input); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(m *domain.Member) {
		m.FirstName = strings.TrimSpace(input.FirstName)
		m.LastName = strings.TrimSpace(input.LastName)
		m.Phone = strings.TrimSpace(input.Phone)
		m.Email = strings.TrimSpace(input.Email)
		m.Tier = input.Tier
	})
}

// modify runs under the ledger lock so a concurrent rental cannot lose its
// history entry to a stale write.
func (s *membershipService) modify(ctx context.Context, id int, change func(*domain.Member)) (*domain.Member, error) {
	var updated *domain.Member
	err := s.ledger.Exclusive(func() error {
		m, ok := s.members.Get(id)
		if !ok {
			return fmt.Errorf("%w: no member with id %d", domain.ErrMemberNotFound, id)
		}
		change(m)
		s.members.Put(m)
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Member updated", "member_id", id)
	return updated, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, id int) error {
	if !s.members.Remove(id) {
		return fmt.Errorf("%w: no member with id %d", domain.ErrMemberNotFound, id)
	}
	logger.InfoContext(ctx, "Member removed", "member_id", id)
	return nil
}

// SearchByFirstName matches a case-insensitive substring of the first name.
func (s *membershipService) SearchByFirstName(query string) []*domain.Member {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []*domain.Member
	for _, m := range s.members.All() {
		if strings.Contains(strings.ToLower(m.FirstName), q) {
			out = append(out, m)
		}
	}
	return out
}
