package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	t.Run("Missing collection reads empty", func(t *testing.T) {
		records, err := store.Read(ctx, CollectionRentals)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Write then read", func(t *testing.T) {
		in := []json.RawMessage{json.RawMessage(`{"id":1}`), json.RawMessage(`{"id":2}`)}
		require.NoError(t, store.Write(ctx, CollectionMembers, in))

		out, err := store.Read(ctx, CollectionMembers)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.JSONEq(t, `{"id":2}`, string(out[1]))

		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp")
		}
	})

	t.Run("Nil records write an empty array", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, CollectionItems, nil))
		data, err := os.ReadFile(store.Path(CollectionItems))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("Empty file reads empty", func(t *testing.T) {
		require.NoError(t, os.WriteFile(store.Path(CollectionAccounts), nil, 0644))
		records, err := store.Read(ctx, CollectionAccounts)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Corrupt file is an error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(store.Path(CollectionRentals), []byte("{not json"), 0644))
		_, err := store.Read(ctx, CollectionRentals)
		assert.Error(t, err)
	})
}
