// Package render projects business records into view models and HTML.
// View-model construction is pure so the filter/render core stays testable
// without a browser or server; the template adapter in html.go is the only
// piece that knows about markup.
package render

import (
	"net/url"
	"strings"

	"claydir/internal/filter"
	"claydir/internal/images"
	"claydir/internal/models"
)

// NotProvided is the neutral placeholder shown for absent optional fields.
// Detail views never render blank or undefined text.
const NotProvided = "Not provided"

// CardView is the display projection of one record in the grid.
type CardView struct {
	Slug          string
	Name          string
	Town          string
	ImageURL      string
	ImageFallback string
	Category      string
	CategoryGlyph string
	Phone         string
	Tier          models.Tier
	ShowPhone     bool
	ShowReadMore  bool
}

// DetailView is the expanded projection of one record for the profile page.
type DetailView struct {
	Name          string
	Slug          string
	Town          string
	Category      string
	CategoryGlyph string
	TierLabel     string
	ImageURL      string
	ImageFallback string
	Phone         string
	Address       string
	Hours         string
	Bio           string
	Website       string
	Facebook      string
	MapURL        string
}

// Builder turns records into view models using the configured image
// resolver and category glyph lookup.
type Builder struct {
	resolver *images.Resolver
	glyph    filter.GlyphFunc
}

// NewBuilder creates a view-model builder.
func NewBuilder(resolver *images.Resolver, glyph filter.GlyphFunc) *Builder {
	return &Builder{
		resolver: resolver,
		glyph:    glyph,
	}
}

// Card projects a single record into its card view. Phone numbers are shown
// only above the basic tier; the read-more affordance only for premium.
func (b *Builder) Card(rec models.BusinessRecord) CardView {
	img := b.resolver.Resolve(rec.ImageRef)

	return CardView{
		Slug:          rec.Slug,
		Name:          rec.Name,
		Town:          DisplayTown(rec.Town),
		ImageURL:      img.URL,
		ImageFallback: img.Fallback,
		Category:      rec.Category,
		CategoryGlyph: b.glyph(rec.Category),
		Phone:         rec.Phone,
		Tier:          rec.Tier,
		ShowPhone:     rec.Tier != models.TierBasic && rec.HasPhone(),
		ShowReadMore:  rec.IsPremium(),
	}
}

// Cards projects an ordered record sequence into card views, in input order.
func (b *Builder) Cards(records []models.BusinessRecord) []CardView {
	cards := make([]CardView, 0, len(records))

	for _, rec := range records {
		cards = append(cards, b.Card(rec))
	}

	return cards
}

// Detail projects a single record into its expanded profile view. Absent
// optional fields resolve to the NotProvided placeholder; website and
// facebook stay empty so the template can drop the buttons entirely.
func (b *Builder) Detail(rec models.BusinessRecord) DetailView {
	img := b.resolver.Resolve(rec.ImageRef)

	return DetailView{
		Name:          rec.Name,
		Slug:          rec.Slug,
		Town:          DisplayTown(rec.Town),
		Category:      orPlaceholder(rec.Category),
		CategoryGlyph: b.glyph(rec.Category),
		TierLabel:     tierLabel(rec.Tier),
		ImageURL:      img.URL,
		ImageFallback: img.Fallback,
		Phone:         orPlaceholder(rec.Phone),
		Address:       orPlaceholder(rec.Address),
		Hours:         orPlaceholder(rec.Hours),
		Bio:           orPlaceholder(rec.Bio),
		Website:       linkOrEmpty(rec.Website),
		Facebook:      linkOrEmpty(rec.Facebook),
		MapURL:        mapURL(rec),
	}
}

// DisplayTown strips display-only suffixes ("Flora, IL" shows as "Flora").
// The canonical town on the record is never changed; filtering always
// compares canonical values.
func DisplayTown(town string) string {
	display, _, _ := strings.Cut(town, ",")

	return strings.TrimSpace(display)
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotProvided
	}

	return value
}

// linkOrEmpty treats "N/A" link cells the same as absent ones.
func linkOrEmpty(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "N/A") {
		return ""
	}

	return value
}

func tierLabel(tier models.Tier) string {
	switch tier {
	case models.TierPremium:
		return "Premium Member"
	case models.TierPlus:
		return "Plus Member"
	default:
		return "Basic Member"
	}
}

// mapURL builds an embeddable map query from the address and town. Empty
// when there is no address to point at.
func mapURL(rec models.BusinessRecord) string {
	if rec.Address == "" {
		return ""
	}

	q := rec.Address + ", " + DisplayTown(rec.Town)

	return "https://maps.google.com/maps?q=" + url.QueryEscape(q) + "&z=14&output=embed"
}
