package domain

import (
	"sort"
	"strconv"
	"strings"
)

// truthy is the accepted set of literal spellings for an active flag,
// as they appear in the underlying table store.
var truthy = map[string]bool{
	"TRUE": true,
	"1":    true,
	"YES":  true,
	"SIM":  true,
	"Y":    true,
}

// ParseActive reports whether a stored flag value counts as active.
// Comparison is case-insensitive; anything outside the accepted set,
// including the empty string, is inactive.
func ParseActive(s string) bool {
	return truthy[strings.ToUpper(strings.TrimSpace(s))]
}

// ParseOrder converts a stored order value to an integer.
// Non-numeric or missing values coerce to 0 rather than failing.
func ParseOrder(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Rotatable is satisfied by every content entity via RowMeta.
type Rotatable interface {
	IsActive() bool
	SortOrder() int
}

// ActiveSorted returns the active rows sorted by order ascending.
// The sort is stable, so rows with equal order keep their table order.
func ActiveSorted[T Rotatable](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.IsActive() {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder() < out[j].SortOrder()
	})
	return out
}
