// Package progress implements the weighted-progress rollup engine for
// WBS (Work Breakdown Structure) line items. All functions here are pure:
// no I/O, no mutation of inputs, deterministic for a fixed item list.
package progress

import (
	"strconv"
	"strings"
)

// Item is a single WBS line item. Code is a user-entered dot-separated
// hierarchy path ("1", "1.2", "1.2.3"); it is not guaranteed unique or
// well-formed. Weight is the item's share of its parent's weight and
// Progress its percent complete, both clamped to [0,100].
type Item struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Progress float64 `json:"progress"`
}

// Clamp forces v into the [0,100] range.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SanitizeNumber parses free-text numeric input for weight/progress fields.
// Everything except digits, dots and a leading minus sign is stripped before
// parsing, so "75%" and "  80 pct" work. Unparseable input becomes 0, and the
// result is clamped to [0,100] (negatives therefore store as 0).
func SanitizeNumber(raw string) float64 {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return Clamp(v)
}

// CopyItems returns a deep, independent copy of the item list.
// Used when capturing and restoring snapshots.
func CopyItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
