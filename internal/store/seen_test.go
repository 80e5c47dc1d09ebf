package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "watcher.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoadEmptyOnFreshDB(t *testing.T) {
	db := openTestDB(t)

	seen, err := db.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestMarkSeenRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.MarkSeen(ctx, []string{"A", "B", "C"}))

	seen, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 3)
	_, ok := seen["B"]
	assert.True(t, ok)
}

func TestMarkSeenIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.MarkSeen(ctx, []string{"A", "B"}))
	require.NoError(t, db.MarkSeen(ctx, []string{"B", "C"}))

	seen, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 3)
}

func TestMarkSeenEmptyIsNoop(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MarkSeen(context.Background(), nil))
}

func TestPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watcher.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.MarkSeen(ctx, []string{"A", "B"}))
	require.NoError(t, db.Close())

	db2, err := Open(path)
	require.NoError(t, err)
	defer db2.Close()

	seen, err := db2.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestImportLegacyJSON(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "seen.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`["A","B"]`), 0o644))

	db, err := Open(filepath.Join(dir, "watcher.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.ImportLegacyJSON(ctx, legacy))
	seen, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 2)

	// a non-empty table is never clobbered by a second import
	require.NoError(t, os.WriteFile(legacy, []byte(`["X","Y","Z"]`), 0o644))
	require.NoError(t, db.ImportLegacyJSON(ctx, legacy))
	seen, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestImportLegacyJSONMissingFile(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.ImportLegacyJSON(context.Background(), filepath.Join(t.TempDir(), "seen.json")))
}

func TestImportLegacyJSONMalformed(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "seen.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{nope`), 0o644))

	db, err := Open(filepath.Join(dir, "watcher.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, db.ImportLegacyJSON(context.Background(), legacy))
}
