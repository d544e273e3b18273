package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/TomKxxx/sreality-tracker/internal/models"
)

const (
	snapshotFile = "sreality_data.json"
	historyFile  = "sreality_history.json"
)

// StateStore persists the latest snapshot and the full listing history.
type StateStore interface {
	// Load returns the last persisted snapshot and history. Absent files are
	// treated as empty state, not as an error.
	Load(ctx context.Context) (models.Snapshot, models.History, error)
	// Save atomically replaces both persisted files.
	Save(ctx context.Context, snapshot models.Snapshot, history models.History) error
}

// FileStore keeps state in two human-diffable JSON files under a data
// directory: the current snapshot and the append-only history.
type FileStore struct {
	log     *slog.Logger
	dataDir string
}

// NewFileStore creates the data directory if needed and returns a store
// rooted at it.
func NewFileStore(log *slog.Logger, dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &FileStore{log: log, dataDir: dataDir}, nil
}

// SnapshotPath returns the full path of the snapshot file.
func (s *FileStore) SnapshotPath() string { return filepath.Join(s.dataDir, snapshotFile) }

// HistoryPath returns the full path of the history file.
func (s *FileStore) HistoryPath() string { return filepath.Join(s.dataDir, historyFile) }

// Load reads the persisted snapshot and history from disk.
func (s *FileStore) Load(ctx context.Context) (models.Snapshot, models.History, error) {
	const opn = "storage.FileStore.Load"

	snapshot := models.Snapshot{}
	if err := readJSON(s.SnapshotPath(), &snapshot); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to load snapshot: %w", opn, err)
	}

	history := models.History{}
	if err := readJSON(s.HistoryPath(), &history); err != nil {
		return nil, nil, fmt.Errorf("%s: failed to load history: %w", opn, err)
	}

	s.log.DebugContext(ctx, "Loaded persisted state",
		"listings", len(snapshot), "tracked", len(history))

	return snapshot, history, nil
}

// Save writes both files via a temp-file-then-rename replace, so a failure
// never leaves a partially written state file behind.
func (s *FileStore) Save(ctx context.Context, snapshot models.Snapshot, history models.History) error {
	const opn = "storage.FileStore.Save"

	if err := writeJSON(s.SnapshotPath(), snapshot); err != nil {
		return fmt.Errorf("%s: failed to save snapshot: %w", opn, err)
	}

	if err := writeJSON(s.HistoryPath(), history); err != nil {
		return fmt.Errorf("%s: failed to save history: %w", opn, err)
	}

	s.log.InfoContext(ctx, "Persisted state",
		"listings", len(snapshot), "tracked", len(history))

	return nil
}

// readJSON decodes the file at path into dst. A missing file leaves dst
// untouched.
func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

// writeJSON marshals src and atomically replaces the file at path.
func writeJSON(path string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}

	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
