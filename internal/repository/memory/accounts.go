package memory

import (
	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/repository"
)

type accountStore struct {
	accounts *ordered[string, *domain.Account]
}

func NewAccountStore() repository.AccountStore {
	return &accountStore{accounts: newOrdered[string, *domain.Account]()}
}

func (s *accountStore) Get(username string) (*domain.Account, bool) {
	a, ok := s.accounts.get(username)
	if !ok {
		return nil, false
	}
	c := *a
	return &c, true
}

func (s *accountStore) Put(account *domain.Account) {
	c := *account
	s.accounts.put(account.Username, &c)
}

func (s *accountStore) Remove(username string) bool {
	return s.accounts.remove(username)
}

func (s *accountStore) All() []*domain.Account {
	var out []*domain.Account
	s.accounts.each(func(a *domain.Account) {
		c := *a
		out = append(out, &c)
	})
	return out
}

func (s *accountStore) Count() int {
	return s.accounts.count()
}

func (s *accountStore) Clear() {
	s.accounts.clear()
}
