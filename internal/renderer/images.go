package renderer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// ImageDownloader fetches listing photos into a local folder so the reports
// keep working after a listing (and its hosted image) disappears.
type ImageDownloader struct {
	log    *slog.Logger
	client *http.Client
	dir    string
}

func NewImageDownloader(log *slog.Logger, client *http.Client, dir string) (*ImageDownloader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory %s: %w", dir, err)
	}

	return &ImageDownloader{log: log, client: client, dir: dir}, nil
}

// Download saves the image for the given listing id and returns the local
// path. Already-downloaded images are reused. Any failure returns an empty
// path; the report simply renders without a photo.
func (d *ImageDownloader) Download(ctx context.Context, imageURL, id string) string {
	if imageURL == "" {
		return ""
	}

	path := filepath.Join(d.dir, id+".jpg")
	if _, err := os.Stat(path); err == nil {
		return path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		d.log.WarnContext(ctx, "Failed to build image request", "id", id, "error", err)
		return ""
	}

	res, err := d.client.Do(req)
	if err != nil {
		d.log.WarnContext(ctx, "Failed to download image", "id", id, "error", err)
		return ""
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		d.log.WarnContext(ctx, "Unexpected image response", "id", id, "status", res.StatusCode)
		return ""
	}

	file, err := os.Create(path)
	if err != nil {
		d.log.WarnContext(ctx, "Failed to create image file", "id", id, "error", err)
		return ""
	}
	defer file.Close()

	if _, err = io.Copy(file, res.Body); err != nil {
		os.Remove(path)
		d.log.WarnContext(ctx, "Failed to write image file", "id", id, "error", err)
		return ""
	}

	return path
}
