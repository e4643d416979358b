package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes to NFD, strips combining marks, and recomposes, so
// accented letters fold to their base form before slugging.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug computes the canonical identity string for a business name. The same
// rule is used for card links, profile lookups, and query parameters:
// diacritics folded, lower-cased, apostrophes and quote marks dropped,
// "&" spelled out as "and", every other non-alphanumeric run collapsed to a
// single hyphen.
func Slug(name string) string {
	folded, _, err := transform.String(foldMarks, name)
	if err != nil {
		folded = name
	}

	folded = strings.ToLower(folded)
	folded = strings.ReplaceAll(folded, "&", " and ")

	var b strings.Builder

	pendingHyphen := false

	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingHyphen = false

			b.WriteRune(r)
		case isQuoteMark(r):
			// Apostrophes join: "Joe's" and "Joe’s" both slug to "joes"
		default:
			pendingHyphen = true
		}
	}

	return b.String()
}

// isQuoteMark reports whether r is a straight or typographic quote.
func isQuoteMark(r rune) bool {
	switch r {
	case '\'', '`', '‘', '’', '"', '“', '”':
		return true
	}

	return false
}
