package filter

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"claydir/internal/models"
)

// Option is one dropdown entry: the canonical value submitted back and the
// display label shown to the user.
type Option struct {
	Value string
	Label string
}

// GlyphFunc maps a canonical category name to its display glyph.
type GlyphFunc func(category string) string

var collator = collate.New(language.English)

// CategoryOptions returns the sorted distinct non-empty categories present
// in the full record set, labeled with their glyph. The full set is used so
// options never shrink to the currently filtered subset.
func CategoryOptions(records []models.BusinessRecord, glyph GlyphFunc) []Option {
	values := distinct(records, func(r models.BusinessRecord) string { return r.Category })

	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Value: v, Label: glyph(v) + " " + v})
	}

	return options
}

// TownOptions returns the sorted distinct non-empty towns present in the
// full record set.
func TownOptions(records []models.BusinessRecord) []Option {
	values := distinct(records, func(r models.BusinessRecord) string { return r.Town })

	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Value: v, Label: v})
	}

	return options
}

// distinct collects the sorted set of distinct non-empty values of one
// field. Sorting uses English collation for stable human ordering.
func distinct(records []models.BusinessRecord, field func(models.BusinessRecord) string) []string {
	seen := make(map[string]bool, len(records))

	var values []string

	for _, rec := range records {
		v := field(rec)
		if v == "" || seen[v] {
			continue
		}

		seen[v] = true

		values = append(values, v)
	}

	collator.SortStrings(values)

	return values
}
