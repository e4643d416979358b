// Package filter derives subsets of the directory store and the dropdown
// option lists driving the filter controls.
package filter

import (
	"claydir/internal/models"
)

// All is the sentinel selection value meaning "no constraint" for a
// dimension.
const All = "All"

// Selection is the active town/category filter pair.
type Selection struct {
	Town     string
	Category string
}

// IsUnconstrained reports whether the selection passes every record.
func (s Selection) IsUnconstrained() bool {
	return (s.Town == All || s.Town == "") && (s.Category == All || s.Category == "")
}

// Apply returns the subset of records passing both dimensions, in input
// order. Town comparison is an exact match against the canonical town (a
// substring match would let "Flora" pass "Flora Heights"); category
// comparison is exact and case-sensitive. Pure function; an empty result is
// not an error.
func Apply(records []models.BusinessRecord, sel Selection) []models.BusinessRecord {
	town := sel.Town
	if town == "" {
		town = All
	}

	category := sel.Category
	if category == "" {
		category = All
	}

	if town == All && category == All {
		return records
	}

	filtered := make([]models.BusinessRecord, 0, len(records))

	for _, rec := range records {
		if town != All && rec.Town != town {
			continue
		}

		if category != All && rec.Category != category {
			continue
		}

		filtered = append(filtered, rec)
	}

	return filtered
}
