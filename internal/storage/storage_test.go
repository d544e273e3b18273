package storage_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/TomKxxx/sreality-tracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.NewFileStore(logger, t.TempDir())
	require.NoError(t, err, "failed to create test store")

	return store
}

func TestFileStore_LoadAbsentFiles(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	snapshot, history, err := store.Load(context.Background())

	require.NoError(t, err, "absent files must be treated as empty state")
	assert.Empty(t, snapshot)
	assert.Empty(t, history)
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	observed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	praha := models.Listing{
		ID:          "12345",
		Name:        "Prodej rodinného domu 280 m²",
		Price:       12500000,
		Locality:    "Klimkovice, okres Ostrava-město",
		Area:        "280",
		URL:         "https://www.sreality.cz/detail/prodej/dum/rodinny/klimkovice/12345",
		ImageURL:    "https://d18-a.sdn.cz/d_18/c_img/12345.jpg",
		Description: "Dům se zahradou, výměra 1 200 m², cena včetně provize.",
		ObservedAt:  observed,
	}

	snapshot := models.Snapshot{"12345": praha}
	history := models.History{"12345": {praha, praha}}

	require.NoError(t, store.Save(ctx, snapshot, history))

	loadedSnapshot, loadedHistory, err := store.Load(ctx)
	require.NoError(t, err)

	// Equality must survive serialization exactly, including non-ASCII
	// text and the integer price.
	assert.Equal(t, snapshot, loadedSnapshot)
	assert.Equal(t, history, loadedHistory)
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	first := models.Snapshot{"A": {ID: "A", Price: 100}}
	require.NoError(t, store.Save(ctx, first, models.History{"A": {{ID: "A", Price: 100}}}))

	second := models.Snapshot{"B": {ID: "B", Price: 200}}
	require.NoError(t, store.Save(ctx, second, models.History{"B": {{ID: "B", Price: 200}}}))

	snapshot, history, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, snapshot)
	assert.NotContains(t, history, "A")

	// No temp debris left next to the state files.
	entries, err := os.ReadDir(filepath.Dir(store.SnapshotPath()))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp-")
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	require.NoError(t, os.WriteFile(store.SnapshotPath(), []byte("{not json"), 0o600))

	_, _, err := store.Load(context.Background())
	require.Error(t, err)
}

func TestNewFileStore_InvalidPath(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := storage.NewFileStore(logger, filepath.Join(string(filepath.Separator), "dev", "null", "nested"))
	require.Error(t, err)
}

func TestFileStore_HumanDiffable(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	snapshot := models.Snapshot{"A": {ID: "A", Name: "Dům v Porubě", Price: 100}}
	require.NoError(t, store.Save(ctx, snapshot, models.History{}))

	data, err := os.ReadFile(store.SnapshotPath())
	require.NoError(t, err)

	// Indented JSON, one field per line.
	assert.Contains(t, string(data), "\n  ")
	assert.Contains(t, string(data), `"price": 100`)
}
