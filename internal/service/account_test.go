package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/repository/memory"
)

func TestAccountService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create and authenticate", func(t *testing.T) {
		svc := NewAccountService(memory.NewAccountStore(), bcrypt.MinCost)
		account, err := svc.CreateAccount(ctx, "tomaswigell", "5555", "Tomas", "Wigell")
		require.NoError(t, err)
		assert.NotEqual(t, "5555", account.PasswordHash)

		got, err := svc.Authenticate(ctx, "tomaswigell", "5555")
		require.NoError(t, err)
		assert.Equal(t, "Tomas", got.FirstName)
	})

	t.Run("Wrong password and unknown user", func(t *testing.T) {
		svc := NewAccountService(memory.NewAccountStore(), bcrypt.MinCost)
		_, err := svc.CreateAccount(ctx, "danieleriksson", "0000", "Daniel", "Eriksson")
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "danieleriksson", "1111")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		_, err = svc.Authenticate(ctx, "nobody", "0000")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		svc := NewAccountService(memory.NewAccountStore(), bcrypt.MinCost)
		_, err := svc.CreateAccount(ctx, "admin", "pw", "A", "B")
		require.NoError(t, err)
		_, err = svc.CreateAccount(ctx, "admin", "pw2", "A", "B")
		assert.ErrorIs(t, err, domain.ErrAccountExists)
		assert.Len(t, svc.ListAccounts(), 1)
	})

	t.Run("Remove", func(t *testing.T) {
		svc := NewAccountService(memory.NewAccountStore(), bcrypt.MinCost)
		_, err := svc.CreateAccount(ctx, "admin", "pw", "A", "B")
		require.NoError(t, err)
		require.NoError(t, svc.RemoveAccount(ctx, "admin"))
		assert.ErrorIs(t, svc.RemoveAccount(ctx, "admin"), domain.ErrAccountNotFound)
	})
}
