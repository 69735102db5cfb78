package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	store, err := NewFileStateStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "coins", []byte(`["BTC","ETH"]`)))

	b, ok, err := store.Get(ctx, "coins")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["BTC","ETH"]`, string(b))

	require.NoError(t, store.Delete(ctx, "coins"))
	_, ok, err = store.Get(ctx, "coins")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, store.Delete(ctx, "coins"))
}

func TestFileStateStoreOverwrite(t *testing.T) {
	store, err := NewFileStateStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte(`1`)))
	require.NoError(t, store.Set(ctx, "k", []byte(`2`)))

	b, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", string(b))
}
