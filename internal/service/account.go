package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/repository"
)

type accountService struct {
	accounts repository.AccountStore
	cost     int
}

// NewAccountService hashes passwords with bcrypt at the given cost. A cost
// of 0 selects bcrypt.DefaultCost.
func NewAccountService(accounts repository.AccountStore, cost int) AccountService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &accountService{accounts: accounts, cost: cost}
}

func (s *accountService) CreateAccount(ctx context.Context, username, password, firstName, lastName string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidCredentials)
	}
	if _, exists := s.accounts.Get(username); exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountExists, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}
	s.accounts.Put(account)
	logger.InfoContext(ctx, "Account created", "username", username)
	return account, nil
}

func (s *accountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, ok := s.accounts.Get(username)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		logger.WarnContext(ctx, "Failed login", "username", username)
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func (s *accountService) RemoveAccount(ctx context.Context, username string) error {
	if !s.accounts.Remove(username) {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, username)
	}
	logger.InfoContext(ctx, "Account removed", "username", username)
	return nil
}

func (s *accountService) ListAccounts() []*domain.Account {
	return s.accounts.All()
}
