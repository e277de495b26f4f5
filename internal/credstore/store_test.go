package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behavior every backend must share.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing key
	_, err := store.Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrNotFound)

	// Set / Get round-trip
	require.NoError(t, store.Set(ctx, "access_token", "A1"))
	value, err := store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A1", value)

	// Overwrite
	require.NoError(t, store.Set(ctx, "access_token", "A2"))
	value, err = store.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A2", value)

	// Independent keys
	require.NoError(t, store.Set(ctx, "refresh_token", "R1"))
	value, err = store.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "R1", value)

	// Delete
	require.NoError(t, store.Delete(ctx, "access_token"))
	_, err = store.Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error
	require.NoError(t, store.Delete(ctx, "access_token"))

	// Other keys untouched by delete
	value, err = store.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "R1", value)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	runStoreContract(t, NewFileStore(path))
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(context.Background(), "access_token", "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	ctx := context.Background()

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, "refresh_token", "R1"))

	second := NewFileStore(path)
	value, err := second.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "R1", value)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)
}

func TestSQLiteStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "access_token", "A1"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	value, err := second.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "A1", value)
}
