package renderer_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/TomKxxx/sreality-tracker/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T) (*renderer.Renderer, string) {
	t.Helper()

	reportDir := t.TempDir()
	r, err := renderer.New(testLogger(), reportDir, nil)
	require.NoError(t, err)

	return r, reportDir
}

func listing(id string, price int) models.Listing {
	return models.Listing{
		ID:          id,
		Name:        "Dům " + id,
		Price:       price,
		Locality:    "Ostrava",
		Area:        "250",
		URL:         "https://www.sreality.cz/detail/prodej/dum/rodinny/ostrava/" + id,
		Description: "Popis domu " + id,
		ObservedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func readReport(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	return string(data)
}

func TestRenderAll_CatalogSortedByPrice(t *testing.T) {
	t.Parallel()

	r, dir := newTestRenderer(t)

	snapshot := models.Snapshot{
		"expensive": listing("expensive", 9000000),
		"cheap":     listing("cheap", 4000000),
		"middle":    listing("middle", 6000000),
	}

	err := r.RenderAll(context.Background(), &models.Changes{}, snapshot, models.History{})
	require.NoError(t, err)

	catalog := readReport(t, dir, "sreality_all_properties.html")
	assert.Contains(t, catalog, "Total Properties:</strong> 3")
	assert.Contains(t, catalog, "4 000 000 Kč")

	cheapIdx := strings.Index(catalog, "Dům cheap")
	middleIdx := strings.Index(catalog, "Dům middle")
	expensiveIdx := strings.Index(catalog, "Dům expensive")
	require.NotEqual(t, -1, cheapIdx)
	assert.Less(t, cheapIdx, middleIdx)
	assert.Less(t, middleIdx, expensiveIdx)
}

func TestRenderAll_AlertsAppendAcrossCycles(t *testing.T) {
	t.Parallel()

	r, dir := newTestRenderer(t)
	ctx := context.Background()

	first := &models.Changes{New: []models.Listing{listing("A", 5000000)}}
	require.NoError(t, r.RenderAll(ctx, first, models.Snapshot{"A": listing("A", 5000000)}, models.History{}))

	second := &models.Changes{PriceChanged: []models.PriceChange{{
		Listing:  listing("A", 4500000),
		OldPrice: 5000000,
		NewPrice: 4500000,
		Delta:    -500000,
	}}}
	require.NoError(t, r.RenderAll(ctx, second, models.Snapshot{"A": listing("A", 4500000)}, models.History{}))

	alerts := readReport(t, dir, "sreality_alerts.html")

	// Both check sections survive, under a single document header.
	assert.Equal(t, 1, strings.Count(alerts, "<h1>"))
	assert.Equal(t, 2, strings.Count(alerts, `class="check-section"`))
	assert.Contains(t, alerts, "New Properties (1)")
	assert.Contains(t, alerts, "Price Changes (1)")
	assert.Contains(t, alerts, "Reduced")
	assert.Contains(t, alerts, "500 000 Kč")
	assert.Equal(t, 1, strings.Count(alerts, "</html>"))
}

func TestRenderAll_NoAlertsNoAlertsFile(t *testing.T) {
	t.Parallel()

	r, dir := newTestRenderer(t)

	err := r.RenderAll(context.Background(), &models.Changes{},
		models.Snapshot{"A": listing("A", 5000000)}, models.History{})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "sreality_alerts.html"))
	assert.True(t, os.IsNotExist(statErr), "alerts file only grows when there is something to report")
}

func TestRenderAll_RemovedReport(t *testing.T) {
	t.Parallel()

	r, dir := newTestRenderer(t)

	older := listing("old", 5000000)
	older.ObservedAt = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	newer := listing("new", 6000000)

	changes := &models.Changes{Removed: []models.Listing{older, newer}}
	require.NoError(t, r.RenderAll(context.Background(), changes, models.Snapshot{}, models.History{}))

	removed := readReport(t, dir, "sreality_removed_properties.html")
	assert.Contains(t, removed, "Total Removed:</strong> 2")
	assert.Contains(t, removed, "Last seen:</strong> 2024-02-01 12:00")

	// Most recently seen first.
	assert.Less(t, strings.Index(removed, "Dům new"), strings.Index(removed, "Dům old"))
}

func TestRenderAll_HistoryReport(t *testing.T) {
	t.Parallel()

	r, dir := newTestRenderer(t)

	snapA1 := listing("A", 5000000)
	snapA2 := listing("A", 4500000)
	snapA2.ObservedAt = snapA1.ObservedAt.Add(6 * time.Hour)

	history := models.History{
		"A": {snapA1, snapA2},
		"B": {listing("B", 7000000)},
	}

	require.NoError(t, r.RenderAll(context.Background(), &models.Changes{}, models.Snapshot{}, history))

	report := readReport(t, dir, "sreality_property_history.html")
	assert.Contains(t, report, "Properties Tracked:</strong> 2")
	assert.Contains(t, report, "price-change")
	assert.Contains(t, report, "price-down")
	assert.Contains(t, report, "-500 000 Kč")

	// Most snapshots first.
	assert.Less(t, strings.Index(report, "Dům A"), strings.Index(report, "Dům B"))
}

func TestRenderAll_EscapesScrapedText(t *testing.T) {
	t.Parallel()

	r, dir := newTestRenderer(t)

	hostile := listing("X", 5000000)
	hostile.Name = `<script>alert("x")</script>`

	err := r.RenderAll(context.Background(), &models.Changes{},
		models.Snapshot{"X": hostile}, models.History{})
	require.NoError(t, err)

	catalog := readReport(t, dir, "sreality_all_properties.html")
	assert.NotContains(t, catalog, "<script>alert")
}

func TestImageDownloader(t *testing.T) {
	t.Parallel()

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.jpg") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits++
		fmt.Fprint(w, "jpeg-bytes")
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	downloader, err := renderer.NewImageDownloader(testLogger(), server.Client(), dir)
	require.NoError(t, err)

	ctx := context.Background()

	path := downloader.Download(ctx, server.URL+"/photo.jpg", "101")
	require.Equal(t, filepath.Join(dir, "101.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	// Second call reuses the file on disk.
	downloader.Download(ctx, server.URL+"/photo.jpg", "101")
	assert.Equal(t, 1, hits)

	assert.Empty(t, downloader.Download(ctx, server.URL+"/missing.jpg", "102"))
	assert.Empty(t, downloader.Download(ctx, "", "103"))
}
