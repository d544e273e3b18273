package models

import (
	"strconv"
	"time"
)

// Listing is one tracked property as observed at a single check cycle.
// A Listing value is never mutated after creation; a later observation of
// the same property produces a fresh value.
type Listing struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Locality    string    `json:"locality"`
	Area        string    `json:"area"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	ObservedAt  time.Time `json:"observed_at"`
}

// Snapshot maps listing ID to the most recent observation of that listing.
// It is replaced wholesale on every check cycle.
type Snapshot map[string]Listing

// History maps listing ID to the chronological, append-only sequence of all
// observations of that listing.
type History map[string][]Listing

// FormatPrice renders an integer CZK amount with space-separated thousands,
// e.g. 1250000 -> "1 250 000 Kč".
func FormatPrice(price int) string {
	digits := strconv.Itoa(price)

	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, d)
	}

	out := string(grouped)
	if negative {
		out = "-" + out
	}

	return out + " Kč"
}
