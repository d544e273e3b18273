package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/TomKxxx/sreality-tracker/internal/models"
)

const (
	alertsFile  = "sreality_alerts.html"
	catalogFile = "sreality_all_properties.html"
	removedFile = "sreality_removed_properties.html"
	historyFile = "sreality_property_history.html"

	checkTimeFormat = "2006-01-02 15:04:05"
	seenTimeFormat  = "2006-01-02 15:04"
	snapTimeFormat  = "01/02 15:04"
)

// Interface is the report contract consumed by the checker. Rendering is
// best-effort: a report failure must never block state persistence.
type Interface interface {
	RenderAll(ctx context.Context, changes *models.Changes, snapshot models.Snapshot, history models.History) error
}

// Renderer writes the static HTML reports: the append-only alerts log, the
// full catalog, the removed-properties page and the per-listing history.
type Renderer struct {
	log       *slog.Logger
	reportDir string
	images    *ImageDownloader

	alertsSection *template.Template
	catalog       *template.Template
	removed       *template.Template
	history       *template.Template
}

func New(log *slog.Logger, reportDir string, images *ImageDownloader) (*Renderer, error) {
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", reportDir, err)
	}

	funcs := template.FuncMap{
		"price": models.FormatPrice,
		"abs": func(n int) int {
			if n < 0 {
				return -n
			}
			return n
		},
		"lastSeen": func(t time.Time) string { return t.Format(seenTimeFormat) },
	}

	r := &Renderer{log: log, reportDir: reportDir, images: images}
	for _, t := range []struct {
		dst  **template.Template
		name string
		text string
	}{
		{&r.alertsSection, "alerts", alertsSectionTmpl},
		{&r.catalog, "catalog", catalogTmpl},
		{&r.removed, "removed", removedTmpl},
		{&r.history, "history", historyTmpl},
	} {
		parsed, err := template.New(t.name).Funcs(funcs).Parse(t.text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", t.name, err)
		}
		*t.dst = parsed
	}

	return r, nil
}

// AlertsPath returns the full path of the append-only alerts report.
func (r *Renderer) AlertsPath() string { return filepath.Join(r.reportDir, alertsFile) }

// RenderAll produces every report for the cycle. Per-report failures are
// collected and returned joined; successfully rendered reports stay on disk.
func (r *Renderer) RenderAll(
	ctx context.Context,
	changes *models.Changes,
	snapshot models.Snapshot,
	history models.History,
) error {
	const opn = "renderer.Renderer.RenderAll"

	var errs []error

	// The alerts log only grows when there is something to report.
	if len(changes.New) > 0 || len(changes.PriceChanged) > 0 {
		if err := r.appendAlerts(ctx, changes); err != nil {
			errs = append(errs, fmt.Errorf("%s: alerts: %w", opn, err))
		}
	}

	if len(changes.Removed) > 0 {
		if err := r.renderRemoved(ctx, changes.Removed); err != nil {
			errs = append(errs, fmt.Errorf("%s: removed: %w", opn, err))
		}
	}

	if err := r.renderCatalog(ctx, snapshot); err != nil {
		errs = append(errs, fmt.Errorf("%s: catalog: %w", opn, err))
	}

	if err := r.renderHistory(ctx, history); err != nil {
		errs = append(errs, fmt.Errorf("%s: history: %w", opn, err))
	}

	return errors.Join(errs...)
}

type listingView struct {
	Listing   models.Listing
	ImagePath string
}

type changeView struct {
	Change    models.PriceChange
	ImagePath string
}

type alertsView struct {
	Timestamp    string
	New          []listingView
	PriceChanged []changeView
}

// appendAlerts appends a timestamped check section to the alerts file,
// keeping every earlier section intact across runs.
func (r *Renderer) appendAlerts(ctx context.Context, changes *models.Changes) error {
	view := alertsView{Timestamp: time.Now().Format(checkTimeFormat)}
	for _, listing := range changes.New {
		view.New = append(view.New, listingView{Listing: listing, ImagePath: r.imageSrc(ctx, listing)})
	}
	for _, change := range changes.PriceChanged {
		view.PriceChanged = append(view.PriceChanged,
			changeView{Change: change, ImagePath: r.imageSrc(ctx, change.Listing)})
	}

	var section bytes.Buffer
	if err := r.alertsSection.Execute(&section, view); err != nil {
		return fmt.Errorf("failed to render alerts section: %w", err)
	}

	path := r.AlertsPath()
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Reopen the document so the new section lands before the footer.
		existing = []byte(strings.TrimSuffix(strings.TrimRight(string(existing), "\n"), strings.TrimRight(alertsFooter, "\n")))
	case os.IsNotExist(err):
		existing = []byte(alertsHeader)
	default:
		return fmt.Errorf("failed to read alerts file: %w", err)
	}

	var doc bytes.Buffer
	doc.Write(existing)
	doc.Write(section.Bytes())
	doc.WriteString(alertsFooter)

	if err = os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write alerts file: %w", err)
	}

	r.log.InfoContext(ctx, "Appended alerts report",
		"new", len(changes.New), "price_changed", len(changes.PriceChanged))

	return nil
}

type catalogView struct {
	Timestamp string
	Listings  []listingView
}

// renderCatalog writes the full-refresh catalog of all current listings,
// cheapest first.
func (r *Renderer) renderCatalog(ctx context.Context, snapshot models.Snapshot) error {
	view := catalogView{Timestamp: time.Now().Format(checkTimeFormat)}
	for _, listing := range snapshot {
		view.Listings = append(view.Listings, listingView{Listing: listing, ImagePath: r.imageSrc(ctx, listing)})
	}
	sort.Slice(view.Listings, func(i, j int) bool {
		if view.Listings[i].Listing.Price != view.Listings[j].Listing.Price {
			return view.Listings[i].Listing.Price < view.Listings[j].Listing.Price
		}
		return view.Listings[i].Listing.ID < view.Listings[j].Listing.ID
	})

	return r.writeReport(ctx, catalogFile, r.catalog, view)
}

// renderRemoved writes the removed-listings page, most recently seen first.
func (r *Renderer) renderRemoved(ctx context.Context, removed []models.Listing) error {
	view := catalogView{Timestamp: time.Now().Format(checkTimeFormat)}
	for _, listing := range removed {
		view.Listings = append(view.Listings, listingView{Listing: listing, ImagePath: r.imageSrc(ctx, listing)})
	}
	sort.Slice(view.Listings, func(i, j int) bool {
		return view.Listings[i].Listing.ObservedAt.After(view.Listings[j].Listing.ObservedAt)
	})

	return r.writeReport(ctx, removedFile, r.removed, view)
}

type snapshotRow struct {
	Index   int
	Date    string
	Price   int
	Delta   int
	Changed bool
}

type historyEntry struct {
	Latest    models.Listing
	ImagePath string
	Snapshots []snapshotRow
}

type historyView struct {
	Timestamp string
	Entries   []historyEntry
}

// renderHistory writes the per-listing timelines, listings with the most
// snapshots first.
func (r *Renderer) renderHistory(ctx context.Context, history models.History) error {
	view := historyView{Timestamp: time.Now().Format(checkTimeFormat)}

	for _, snapshots := range history {
		if len(snapshots) == 0 {
			continue
		}

		entry := historyEntry{Latest: snapshots[len(snapshots)-1]}
		entry.ImagePath = r.imageSrc(ctx, entry.Latest)

		prevPrice := 0
		for i, snap := range snapshots {
			row := snapshotRow{
				Index: i + 1,
				Date:  snap.ObservedAt.Format(snapTimeFormat),
				Price: snap.Price,
			}
			if i > 0 && snap.Price != prevPrice {
				row.Changed = true
				row.Delta = snap.Price - prevPrice
			}
			prevPrice = snap.Price
			entry.Snapshots = append(entry.Snapshots, row)
		}

		view.Entries = append(view.Entries, entry)
	}

	sort.Slice(view.Entries, func(i, j int) bool {
		if len(view.Entries[i].Snapshots) != len(view.Entries[j].Snapshots) {
			return len(view.Entries[i].Snapshots) > len(view.Entries[j].Snapshots)
		}
		return view.Entries[i].Latest.ID < view.Entries[j].Latest.ID
	})

	return r.writeReport(ctx, historyFile, r.history, view)
}

func (r *Renderer) writeReport(ctx context.Context, name string, tmpl *template.Template, view any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	path := filepath.Join(r.reportDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	r.log.DebugContext(ctx, "Wrote report", "report", name)

	return nil
}

// imageSrc downloads the listing photo and returns the src attribute for it,
// relative to the report directory when possible.
func (r *Renderer) imageSrc(ctx context.Context, listing models.Listing) string {
	if r.images == nil {
		return ""
	}

	path := r.images.Download(ctx, listing.ImageURL, listing.ID)
	if path == "" {
		return ""
	}

	if rel, err := filepath.Rel(r.reportDir, path); err == nil {
		return rel
	}

	return path
}
