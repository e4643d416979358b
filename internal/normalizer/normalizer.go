// Package normalizer maps raw feed rows into canonical business records.
// It is the single boundary that knows about alternate column spellings;
// nothing downstream branches on raw keys again.
package normalizer

import (
	"errors"
	"strings"

	"claydir/internal/models"
)

// ErrMissingName is returned when a row has no usable business name.
var ErrMissingName = errors.New("row has no usable business name")

// fieldAliases lists the accepted header spellings per canonical field, in
// resolution order. Lookup is case-insensitive over trimmed header names.
var fieldAliases = map[string][]string{
	"name":     {"name", "business name", "business"},
	"town":     {"town", "city"},
	"category": {"category", "industry"},
	"phone":    {"phone", "phone number", "telephone"},
	"address":  {"address", "street address"},
	"hours":    {"hours", "business hours"},
	"website":  {"website", "url", "web"},
	"facebook": {"facebook", "fb"},
	"imageRef": {"imageid", "image id", "imageref", "image", "logo"},
	"tier":     {"tier", "membership", "level"},
	"bio":      {"bio", "about", "description", "story"},
}

// Normalizer converts raw rows into canonical records.
type Normalizer struct {
	defaultTown string
}

// NewNormalizer creates a normalizer. defaultTown fills the Town field when
// the source column is absent or blank.
func NewNormalizer(defaultTown string) *Normalizer {
	if defaultTown == "" {
		defaultTown = "Unknown"
	}

	return &Normalizer{defaultTown: defaultTown}
}

// Normalize produces a canonical record from one raw row, or ErrMissingName
// when no usable name is found. Pure function of the row.
func (n *Normalizer) Normalize(row models.RawRow) (*models.BusinessRecord, error) {
	folded := foldKeys(row)

	name := resolve(folded, "name")
	if name == "" {
		return nil, ErrMissingName
	}

	record := &models.BusinessRecord{
		Name:     name,
		Slug:     Slug(name),
		Town:     resolve(folded, "town"),
		Category: resolve(folded, "category"),
		Phone:    resolve(folded, "phone"),
		Address:  resolve(folded, "address"),
		Hours:    resolve(folded, "hours"),
		Website:  resolve(folded, "website"),
		Facebook: resolve(folded, "facebook"),
		ImageRef: resolve(folded, "imageRef"),
		Bio:      resolve(folded, "bio"),
		Tier:     models.ParseTier(resolve(folded, "tier")),
	}

	// Town is kept verbatim after trimming; display cosmetics belong to
	// the renderer, not the canonical record.
	if record.Town == "" {
		record.Town = n.defaultTown
	}

	return record, nil
}

// NormalizeAll normalizes every row, dropping rejects. Returns the records
// in input order and the number of rejected rows.
func (n *Normalizer) NormalizeAll(rows []models.RawRow) ([]models.BusinessRecord, int) {
	records := make([]models.BusinessRecord, 0, len(rows))
	rejected := 0

	for _, row := range rows {
		record, err := n.Normalize(row)
		if err != nil {
			rejected++

			continue
		}

		records = append(records, *record)
	}

	return records, rejected
}

// foldKeys lower-cases and trims the raw header names once per row.
func foldKeys(row models.RawRow) map[string]string {
	folded := make(map[string]string, len(row))

	for key, value := range row {
		folded[strings.ToLower(strings.TrimSpace(key))] = value
	}

	return folded
}

// resolve tries the accepted spellings for a field in order and returns the
// first non-empty trimmed value.
func resolve(folded map[string]string, field string) string {
	for _, alias := range fieldAliases[field] {
		if value, ok := folded[alias]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}

	return ""
}
