package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// AlertSource retrieves the raw alert records reported on a single calendar
// day. Implementations return every category; filtering happens once in
// FetchRange, before any matching.
type AlertSource interface {
	AlertsForDay(ctx context.Context, day time.Time) ([]AlertRecord, error)
}

// FetchRange retrieves rocket-category alerts for every day from from to to
// inclusive. Days are fetched concurrently up to the given limit and the
// results reassembled in day-ascending order, since last-alert derivation
// depends on it. The first failed day aborts the whole range with a
// *FetchError; partial ranges are never returned.
func FetchRange(ctx context.Context, src AlertSource, from, to time.Time, concurrency int) ([]AlertRecord, error) {
	days := daysBetween(from, to)
	if len(days) == 0 {
		return nil, &FetchError{Err: errors.New("from date is after to date")}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	perDay := make([][]AlertRecord, len(days))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, day := range days {
		g.Go(func() error {
			records, err := src.AlertsForDay(gctx, day)
			if err != nil {
				return &FetchError{Day: day.Format(DateLayout), Err: err}
			}
			perDay[i] = filterRocketAlerts(records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{Err: err}
	}

	var alerts []AlertRecord
	for _, records := range perDay {
		alerts = append(alerts, records...)
	}
	return alerts, nil
}

// filterRocketAlerts keeps only rocket/missile records. Category comparison
// is on the canonical string form because the feed's field type varies.
func filterRocketAlerts(records []AlertRecord) []AlertRecord {
	var kept []AlertRecord
	for _, r := range records {
		if r.Category == RocketCategory {
			kept = append(kept, r)
		}
	}
	return kept
}

// daysBetween lists every calendar day from from to to inclusive, ignoring
// the time-of-day of either bound. An inverted range yields no days.
func daysBetween(from, to time.Time) []time.Time {
	from = truncateToDay(from)
	to = truncateToDay(to)

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
