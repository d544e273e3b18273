package sqlite_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/TomKxxx/sreality-tracker/internal/repository/sqlite"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// newMockedRepo builds a repository around a sqlmock handle for
// failure-path tests.
func newMockedRepo(t *testing.T) (*sqlite.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return sqlite.NewWithDB(db, logger), mock
}

// newTestRepo creates a repository backed by a real temporary database.
func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(context.Background(), logger, dbPath)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		if err = repo.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return repo
}

func TestNewRepository_Success(t *testing.T) {
	repo := newTestRepo(t)
	require.NotNil(t, repo)
}

func TestNewRepository_InvalidPath(t *testing.T) {
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := sqlite.NewRepository(ctx, logger, "/invalid/path/to/db.sqlite")
	require.Error(t, err)
}

func TestSchemaInitialization(t *testing.T) {
	repo := newTestRepo(t)

	rows, err := repo.DB().Query("SELECT name FROM sqlite_master WHERE type='table'")
	require.NoError(t, err)
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	require.True(t, found["subscriptions"], "expected table 'subscriptions' to exist, got: %+v", found)
}
