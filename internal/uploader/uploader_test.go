package uploader_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/TomKxxx/sreality-tracker/internal/uploader"
	"github.com/stretchr/testify/require"
)

func TestGitUploader_NotARepository(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	up := uploader.NewGitUploader(logger, t.TempDir())

	// A plain directory is not a git working tree; the failure must be
	// surfaced, not swallowed.
	require.Error(t, up.Upload(context.Background()))
}
