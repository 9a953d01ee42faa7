package repository

import (
	"memberclub-backend/internal/domain"
)

// ItemCatalog is the keyed store of rentable items. Implementations return
// copies, so callers change stored items only through Put and SetStatus.
type ItemCatalog interface {
	Get(id string) (domain.Item, bool)
	Put(item domain.Item)
	Remove(id string) bool
	All() []domain.Item
	Count() int
	SetStatus(id string, status domain.ItemStatus) bool
	Clear()
}

// MemberDirectory is the keyed store of members.
type MemberDirectory interface {
	Get(id int) (*domain.Member, bool)
	Put(member *domain.Member)
	Remove(id int) bool
	All() []*domain.Member
	Count() int
	AppendRental(memberID int, rentalID string) bool
	Clear()
}

// AccountStore holds operator accounts keyed by username.
type AccountStore interface {
	Get(username string) (*domain.Account, bool)
	Put(account *domain.Account)
	Remove(username string) bool
	All() []*domain.Account
	Count() int
	Clear()
}
