package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherContainment(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		userCity  string
		candidate string
		expected  bool
	}{
		{"exact match", "תל אביב", "תל אביב", true},
		{"city inside location", "תל אביב", "תל אביב יפו", true},
		{"location inside city", "תל אביב יפו", "תל אביב", true},
		{"unrelated city", "אשדוד", "אשקלון", false},
		{"punctuation variants match", "קרית-גת", "קרית־גת", true},
		{"case insensitive", "Tel Aviv", "TEL AVIV", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Matches(tt.userCity, LocationList{tt.candidate}))
		})
	}
}

func TestMatcherOverrides(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		userCity  string
		candidate string
		expected  bool
	}{
		{"ashdod subdistrict suffix", "אשדוד", "אשדוד - דרום", true},
		{"ashdod north", "אשדוד", "אשדוד - צפון", true},
		{"ashdod vs ashkelon", "אשדוד", "אשקלון", false},
		{"modiin compound district", "מודיעין", "מודיעין עילית", true},
		{"modiin mid-string", "מודיעין", "יישובי מודיעין והסביבה", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Matches(tt.userCity, LocationList{tt.candidate}))
		})
	}
}

func TestMatcherCandidateLists(t *testing.T) {
	m := NewMatcher()

	t.Run("first matching candidate wins", func(t *testing.T) {
		assert.True(t, m.Matches("אשדוד", LocationList{"אשקלון", "אשדוד - צפון", "יבנה"}))
	})

	t.Run("no candidate matches", func(t *testing.T) {
		assert.False(t, m.Matches("אשדוד", LocationList{"אשקלון", "יבנה"}))
	})

	t.Run("malformed location yields no match", func(t *testing.T) {
		assert.False(t, m.Matches("אשדוד", nil))
		assert.False(t, m.Matches("אשדוד", LocationList{}))
	})
}

func TestMatcherEmptyCityNeverMatches(t *testing.T) {
	m := NewMatcher()

	assert.False(t, m.Matches("", LocationList{"אשדוד"}))
	assert.False(t, m.Matches("   ", LocationList{"אשדוד"}))
	// Empty candidates are guarded the same way: "" is contained in every city.
	assert.False(t, m.Matches("אשדוד", LocationList{""}))
}
