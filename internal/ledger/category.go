package ledger

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// CategoryOpening marks the synthetic opening-balance entries created by
// onboarding. It is never offered in pickers.
const CategoryOpening = "Opening Balance"

// Categories is the standard set offered by the UI. It is a convenience,
// not a constraint: transactions may carry any non-empty category.
var Categories = []string{
	"Food",
	"Transport",
	"Entertainment",
	"Utilities",
	"Rent",
	"Shopping",
	"Health",
	"Education",
	"Savings",
	"Other",
}

// NormalizeCategory snaps a free-text category onto the standard set when it
// is a near miss (case-insensitive, edit distance <= 2), and otherwise
// returns the trimmed input unchanged.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	best := ""
	bestDist := 3
	for _, c := range Categories {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if best != "" {
		return best
	}
	return s
}
