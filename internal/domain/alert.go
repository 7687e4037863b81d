package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the feed's calendar-day format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// RocketCategory is the feed category for rocket and missile alerts, the only
// category in scope for reconciliation.
const RocketCategory Category = "1"

// AlertRecord is one reported incident from the alarm-history feed.
// Records are immutable once fetched.
type AlertRecord struct {
	Date      string       `json:"date"`
	Time      string       `json:"time"`
	AlertDate Timestamp    `json:"alertDate"`
	Category  Category     `json:"category"`
	Location  LocationList `json:"data"`
}

// MatchedAlert is the projection of an AlertRecord kept in reconciliation
// output and persisted to the roster store.
type MatchedAlert struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Value renders the matched alert in the form recorded in the roster store,
// e.g. "01.01.2024 10:00".
func (m MatchedAlert) Value() string {
	return m.Date + " " + m.Time
}

// Category is the feed's alert category. The feed encodes it as a JSON number
// in some responses and a string in others; both decode to the canonical
// string form so equality checks work regardless of the source encoding.
type Category string

func (c *Category) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Category(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Category(strings.TrimSpace(s))
		return nil
	}
	// Unknown shape: leave the category empty so the record is filtered out.
	*c = ""
	return nil
}

// LocationList holds the alert's location candidates. The feed's "data" field
// is a single string for most alerts and a list of strings for multi-area
// alerts. Any other shape is malformed and decodes to an empty list, which
// matches no user.
type LocationList []string

func (l *LocationList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = LocationList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*l = LocationList(many)
		return nil
	}
	*l = nil
	return nil
}

// timestampLayouts are the alertDate encodings observed in feed responses.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Timestamp is the feed's sortable alertDate field. Production responses
// carry an ISO-style timestamp string; older dumps carry a bare numeric
// ordinal. Both decode into a single comparable key.
type Timestamp struct {
	raw json.RawMessage
	key float64
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.raw = append(json.RawMessage(nil), b...)

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		t.key, _ = n.Float64()
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.key = float64(parsed.Unix())
			return nil
		}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		t.key = v
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if len(t.raw) == 0 {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// Before reports whether t orders strictly before u.
func (t Timestamp) Before(u Timestamp) bool {
	if t.key != u.key {
		return t.key < u.key
	}
	// Equal keys fall back to the raw encoding so ordering stays total.
	return bytes.Compare(t.raw, u.raw) < 0
}

// TimestampFromOrdinal builds a Timestamp from a plain ordinal, mainly for
// constructing fixtures.
func TimestampFromOrdinal(n int64) Timestamp {
	return Timestamp{
		raw: json.RawMessage(strconv.FormatInt(n, 10)),
		key: float64(n),
	}
}
