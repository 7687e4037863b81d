package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "אשדוד", "אשדוד"},
		{"surrounding whitespace", "  תל אביב \t", "תל אביב"},
		{"maqaf becomes hyphen", "קרית־גת", "קרית-גת"},
		{"en dash becomes hyphen", "אשדוד – דרום", "אשדוד - דרום"},
		{"gershayim removed", "ק״ש", "קש"},
		{"apostrophe removed", "בנימינה-גבעת עדה'", "בנימינה-גבעת עדה"},
		{"latin lowercased", "Tel Aviv", "tel aviv"},
		{"mixed variants", " מודיעין־מכבים־רעות' ", "מודיעין-מכבים-רעות"},
		{"empty string", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"אשדוד – דרום",
		"קרית־גת",
		"ק״ש",
		"Tel Aviv-Yafo",
		"",
		"  מודיעין  ",
	}

	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := " אשדוד – דרום "
	copied := raw
	Normalize(raw)
	assert.Equal(t, copied, raw)
}
