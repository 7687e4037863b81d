package domain

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned per-day records keyed by DD.MM.YYYY.
type fakeSource struct {
	mu      sync.Mutex
	records map[string][]AlertRecord
	errs    map[string]error
	calls   []string
}

func (f *fakeSource) AlertsForDay(_ context.Context, day time.Time) ([]AlertRecord, error) {
	key := day.Format(DateLayout)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.records[key], nil
}

func rocketAlert(date, time string, ordinal int64, locations ...string) AlertRecord {
	return AlertRecord{
		Date:      date,
		Time:      time,
		AlertDate: TimestampFromOrdinal(ordinal),
		Category:  RocketCategory,
		Location:  LocationList(locations),
	}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestFetchRangeSingleDay(t *testing.T) {
	src := &fakeSource{records: map[string][]AlertRecord{
		"01.01.2024": {
			rocketAlert("01.01.2024", "10:00", 1, "אשדוד - צפון"),
			{Date: "01.01.2024", Time: "11:00", AlertDate: TimestampFromOrdinal(2), Category: "2", Location: LocationList{"אשדוד"}},
		},
	}}

	d := day(t, "01.01.2024")
	alerts, err := FetchRange(context.Background(), src, d, d, 1)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "10:00", alerts[0].Time)
	assert.Equal(t, []string{"01.01.2024"}, src.calls)
}

func TestFetchRangeMultiDay(t *testing.T) {
	src := &fakeSource{records: map[string][]AlertRecord{
		"01.01.2024": {rocketAlert("01.01.2024", "08:00", 1, "אשדוד")},
		"03.01.2024": {
			rocketAlert("03.01.2024", "09:00", 5, "יבנה"),
			rocketAlert("03.01.2024", "21:00", 6, "אשקלון"),
		},
	}}

	alerts, err := FetchRange(context.Background(), src, day(t, "01.01.2024"), day(t, "03.01.2024"), 4)

	require.NoError(t, err)
	require.Len(t, alerts, 3)
	// Day-ascending order regardless of fetch concurrency.
	assert.Equal(t, "01.01.2024", alerts[0].Date)
	assert.Equal(t, "03.01.2024", alerts[1].Date)
	assert.Equal(t, "03.01.2024", alerts[2].Date)

	assert.ElementsMatch(t, []string{"01.01.2024", "02.01.2024", "03.01.2024"}, src.calls)
}

func TestFetchRangeFailedDayAbortsRange(t *testing.T) {
	feedDown := errors.New("connection refused")
	src := &fakeSource{
		records: map[string][]AlertRecord{
			"01.01.2024": {rocketAlert("01.01.2024", "08:00", 1, "אשדוד")},
		},
		errs: map[string]error{"02.01.2024": feedDown},
	}

	alerts, err := FetchRange(context.Background(), src, day(t, "01.01.2024"), day(t, "03.01.2024"), 1)

	require.Error(t, err)
	assert.Nil(t, alerts)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "02.01.2024", fe.Day)
	assert.ErrorIs(t, err, feedDown)
}

func TestFetchRangeInvertedRange(t *testing.T) {
	src := &fakeSource{}

	_, err := FetchRange(context.Background(), src, day(t, "02.01.2024"), day(t, "01.01.2024"), 1)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, src.calls)
}

func TestFetchRangeOnlyCategoryOneSurvives(t *testing.T) {
	src := &fakeSource{records: map[string][]AlertRecord{
		"05.01.2024": {
			{Date: "05.01.2024", Time: "10:00", Category: "2", Location: LocationList{"אשדוד"}},
			{Date: "05.01.2024", Time: "10:05", Category: "13", Location: LocationList{"אשדוד"}},
		},
	}}

	d := day(t, "05.01.2024")
	alerts, err := FetchRange(context.Background(), src, d, d, 1)

	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestDaysBetween(t *testing.T) {
	t.Run("inclusive bounds", func(t *testing.T) {
		days := daysBetween(day(t, "30.12.2023"), day(t, "02.01.2024"))
		require.Len(t, days, 4)
		assert.Equal(t, "30.12.2023", days[0].Format(DateLayout))
		assert.Equal(t, "02.01.2024", days[3].Format(DateLayout))
	})

	t.Run("same day", func(t *testing.T) {
		days := daysBetween(day(t, "01.01.2024"), day(t, "01.01.2024"))
		assert.Len(t, days, 1)
	})

	t.Run("time of day ignored", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
		to := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
		assert.Len(t, daysBetween(from, to), 2)
	})
}
