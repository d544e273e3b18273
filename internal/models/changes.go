package models

// PriceChange - a listing whose price differs from the previous snapshot.
type PriceChange struct {
	Listing  Listing
	OldPrice int
	NewPrice int
	Delta    int // NewPrice - OldPrice, negative for a price drop.
}

// Changes - comparison result of one check cycle: all classified diffs.
// Listings present in both snapshots with an unchanged price are implicitly
// "unchanged" and carry no alert.
type Changes struct {
	New          []Listing
	PriceChanged []PriceChange
	Removed      []Listing
}

// HasAlerts reports whether the cycle produced anything worth surfacing.
func (c *Changes) HasAlerts() bool {
	return len(c.New) > 0 || len(c.PriceChanged) > 0 || len(c.Removed) > 0
}
