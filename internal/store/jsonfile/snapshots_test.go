package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/diffpane/internal/core/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "state.json"))

	ledger, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())
}

func TestSnapshotStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ledger, err := NewSnapshotStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewSnapshotStore(path)

	ledger := snapshot.New()
	ledger.Track("b.go", "old\n", "old\n")
	ledger.Track("a.go", "", "new\n")
	ledger.Update("b.go", "changed\n")

	require.NoError(t, store.Save(ctx, ledger))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go", "a.go"}, loaded.Paths())

	snap, ok := loaded.Get("b.go")
	require.True(t, ok)
	assert.Equal(t, "old\n", snap.Baseline)
	assert.Equal(t, "changed\n", snap.Current)
	assert.Equal(t, 2, loaded.PendingCount())
}

func TestSnapshotStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewSnapshotStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse state file")
}

func TestSnapshotStore_LoadWrongVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 9, "files": []}`), 0o644))

	_, err := NewSnapshotStore(path).Load(context.Background())
	require.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)
}
