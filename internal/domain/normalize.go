package domain

import "strings"

// replacements canonicalizes the punctuation variants seen in feed location
// strings and user-entered city names. Kept as data so new variants are a
// table edit, not a matching-logic change.
var replacements = [...]struct{ from, to string }{
	{"־", "-"}, // Hebrew maqaf
	{"–", "-"}, // en dash
	{"״", ""},  // Hebrew gershayim
	{"'", ""},  // ASCII apostrophe
}

// Normalize canonicalizes a raw city or location name for comparison: trims
// surrounding whitespace, applies the replacement table, and lowercases.
// It is pure, total, and idempotent; empty input yields an empty string.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return strings.ToLower(s)
}
