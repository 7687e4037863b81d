package domain

import "strings"

// matchStrategy is how an override city compares against a location candidate
// when plain containment did not already decide the match.
type matchStrategy int

const (
	matchNone     matchStrategy = iota
	matchPrefix                 // candidate starts with the city name
	matchContains               // candidate contains the city name anywhere
)

// Built-in override cities, in the normalized form produced by Normalize.
const (
	cityAshdod = "אשדוד"
	cityModiin = "מודיעין"
)

// Matcher decides whether a user's city refers to one of an alert's location
// candidates. The general rule is bidirectional substring containment, which
// is intentionally permissive so both abbreviated and extended location names
// match. Cities that need more than containment get an entry in the override
// table instead of a branch in the matching loop.
type Matcher struct {
	overrides map[string]matchStrategy
}

// NewMatcher returns a Matcher with the built-in overrides: Ashdod alerts
// carry subdistrict suffixes ("אשדוד - דרום"), and Modiin appears inside
// compound district names ("מודיעין עילית").
func NewMatcher() *Matcher {
	return &Matcher{
		overrides: map[string]matchStrategy{
			cityAshdod: matchPrefix,
			cityModiin: matchContains,
		},
	}
}

// Matches reports whether userCity refers to any of the location candidates.
// An empty or whitespace-only city never matches: the empty string is a
// substring of every location, so without the guard such a user would match
// every alert in the feed. Empty candidates are rejected for the same reason.
func (m *Matcher) Matches(userCity string, candidates LocationList) bool {
	city := Normalize(userCity)
	if city == "" {
		return false
	}

	for _, raw := range candidates {
		loc := Normalize(raw)
		if loc == "" {
			continue
		}
		if strings.Contains(loc, city) || strings.Contains(city, loc) {
			return true
		}
		switch m.overrides[city] {
		case matchPrefix:
			if strings.HasPrefix(loc, city) {
				return true
			}
		case matchContains:
			if strings.Contains(loc, city) {
				return true
			}
		}
	}
	return false
}
