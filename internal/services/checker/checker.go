package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/TomKxxx/sreality-tracker/internal/fetcher"
	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/TomKxxx/sreality-tracker/internal/renderer"
	"github.com/TomKxxx/sreality-tracker/internal/storage"
)

// ErrEmptyFetch is returned when the current fetch yields zero listings.
// An empty result is treated as a suspected transient fetch failure, never
// as a legitimate mass delisting, so the cycle aborts before touching any
// state. The tradeoff: a genuine removal of every tracked listing goes
// unreported until the source returns at least one result again.
var ErrEmptyFetch = errors.New("current fetch returned no listings")

// Checker is an orchestrator that performs a full check cycle.
type Checker struct {
	log      *slog.Logger
	fetcher  fetcher.Interface
	store    storage.StateStore
	renderer renderer.Interface
}

type Interface interface {
	// RunCycle performs the full fetch-detect-render-persist cycle.
	RunCycle(ctx context.Context) (*models.Changes, error)
}

// NewChecker creates a new Checker instance.
func NewChecker(
	log *slog.Logger,
	fetch fetcher.Interface,
	store storage.StateStore,
	render renderer.Interface,
) *Checker {
	return &Checker{log: log, fetcher: fetch, store: store, renderer: render}
}

// Detect compares the current snapshot against the previous one, appends
// every currently observed listing to its history timeline and classifies
// each listing's transition.
//
// For every id in current the record is appended to history exactly once,
// whether or not anything changed; that append is what builds the full
// time series. New ids are those absent from previous - a listing that was
// removed earlier and reappears counts as new again, since only the
// immediately preceding snapshot is consulted. Removed listings carry
// their last known record, so ObservedAt doubles as "last seen". Listings
// whose price is unchanged produce no alert even when other metadata
// drifted; the fresh metadata still lands in history.
//
// history is updated in place. When current is empty, ErrEmptyFetch is
// returned before any mutation. Given identical inputs the output is
// identical; the result slices are sorted by id.
func Detect(previous, current models.Snapshot, history models.History) (*models.Changes, error) {
	if len(current) == 0 {
		return nil, ErrEmptyFetch
	}

	changes := &models.Changes{}

	for id, cur := range current {
		history[id] = append(history[id], cur)

		prev, seen := previous[id]
		switch {
		case !seen:
			changes.New = append(changes.New, cur)
		case prev.Price != cur.Price:
			changes.PriceChanged = append(changes.PriceChanged, models.PriceChange{
				Listing:  cur,
				OldPrice: prev.Price,
				NewPrice: cur.Price,
				Delta:    cur.Price - prev.Price,
			})
		}
	}

	for id, prev := range previous {
		if _, ok := current[id]; !ok {
			changes.Removed = append(changes.Removed, prev)
		}
	}

	sort.Slice(changes.New, func(i, j int) bool {
		return changes.New[i].ID < changes.New[j].ID
	})
	sort.Slice(changes.PriceChanged, func(i, j int) bool {
		return changes.PriceChanged[i].Listing.ID < changes.PriceChanged[j].Listing.ID
	})
	sort.Slice(changes.Removed, func(i, j int) bool {
		return changes.Removed[i].ID < changes.Removed[j].ID
	})

	return changes, nil
}

// RunCycle performs the full check cycle: load persisted state, fetch the
// current listings, detect changes, render reports and persist the new
// state. A render failure is logged but never blocks persistence; any
// other failure aborts the cycle and leaves the persisted state untouched.
func (c *Checker) RunCycle(ctx context.Context) (*models.Changes, error) {
	const opn = "checker.RunCycle"
	log := c.log.With("op", opn)

	previous, history, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load previous state: %w", opn, err)
	}

	log.InfoContext(ctx, "Fetching current listings", "previously_known", len(previous))
	current, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch listings: %w", opn, err)
	}

	changes, err := Detect(previous, current, history)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	log.InfoContext(
		ctx,
		"Change detection complete",
		"new",
		len(changes.New),
		"price_changed",
		len(changes.PriceChanged),
		"removed",
		len(changes.Removed),
	)

	if err = c.renderer.RenderAll(ctx, changes, current, history); err != nil {
		log.WarnContext(ctx, "Report rendering failed, continuing to persist state", "error", err)
	}

	if err = c.store.Save(ctx, current, history); err != nil {
		return nil, fmt.Errorf("%s: failed to persist state: %w", opn, err)
	}

	return changes, nil
}
