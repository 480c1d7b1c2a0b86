package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsmith/propscore/pkg/logger"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "config.db"), logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, _, err = store.ReadCurrent(ctx)
	assert.ErrorIs(t, err, ErrNoConfig, "an empty store reports ErrNoConfig, not a failure")

	doc := []byte("bonus:\n  max_bonus: 4.0\n")
	require.NoError(t, store.Write(ctx, doc))

	raw, updatedAt, err := store.ReadCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, raw)
	assert.False(t, updatedAt.IsZero(), "writes stamp updated_at")

	cfg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Bonus.MaxBonus)
}

func TestSQLiteStoreUpsertReplaces(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "config.db"), logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Write(ctx, []byte("bonus:\n  max_bonus: 4.0\n")))
	require.NoError(t, store.Write(ctx, []byte("bonus:\n  max_bonus: 6.0\n")))

	raw, _, err := store.ReadCurrent(ctx)
	require.NoError(t, err)

	cfg, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 6.0, cfg.Bonus.MaxBonus, "a second write replaces the document")
}

func TestSQLiteStoreRejectsInvalidDocument(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "config.db"), logger.Nop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	err = store.Write(ctx, []byte("penalty:\n  floor: 5.0\n"))
	assert.Error(t, err, "invalid documents never reach storage")

	_, _, err = store.ReadCurrent(ctx)
	assert.ErrorIs(t, err, ErrNoConfig, "the rejected write left nothing behind")
}
