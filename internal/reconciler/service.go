// Package reconciler ties the feed, the matcher, and the roster store into
// one invocation: fetch alerts, load the roster, match, persist last alerts.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
	"github.com/hilaln2210/AlertsAndUsers/internal/observability"
)

// RosterStore is the roster collaborator: read every subscriber, write one
// subscriber's recorded last alert.
type RosterStore interface {
	GetUsers(ctx context.Context) ([]domain.User, error)
	UpdateLastAlert(ctx context.Context, name, value string) error
}

// Notifier publishes per-user last-alert changes to downstream consumers.
type Notifier interface {
	NotifyLastAlert(ctx context.Context, res domain.ReconciliationResult) error
}

// Summary is the outcome of one invocation.
type Summary struct {
	From          string                        `json:"from"`
	To            string                        `json:"to"`
	AlertsFetched int                           `json:"alerts_fetched"`
	UsersMatched  int                           `json:"users_matched"`
	Results       []domain.ReconciliationResult `json:"results"`
}

// Service runs reconciliation invocations. It holds no state between runs
// beyond readiness; the persisted last-alert field lives in the roster store.
type Service struct {
	source   domain.AlertSource
	store    RosterStore
	notifier Notifier // nil disables notifications
	matcher  *domain.Matcher
	logger   *slog.Logger
	metrics  *observability.Metrics

	fetchConcurrency  int
	updateConcurrency int

	ready atomic.Bool
}

// New creates a Service. notifier may be nil.
func New(source domain.AlertSource, store RosterStore, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics, fetchConcurrency, updateConcurrency int) *Service {
	if fetchConcurrency < 1 {
		fetchConcurrency = 1
	}
	if updateConcurrency < 1 {
		updateConcurrency = 1
	}
	return &Service{
		source:            source,
		store:             store,
		notifier:          notifier,
		matcher:           domain.NewMatcher(),
		logger:            logger,
		metrics:           metrics,
		fetchConcurrency:  fetchConcurrency,
		updateConcurrency: updateConcurrency,
	}
}

// CheckReadiness returns nil once at least one invocation has completed
// successfully.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no reconciliation run has completed yet")
	}
	return nil
}

// Run executes one reconciliation pass over the inclusive day range. Fetch
// and roster-read failures are fatal and return no partial results; update
// failures are isolated per user and reported inside the summary.
func (s *Service) Run(ctx context.Context, from, to time.Time) (*Summary, error) {
	start := time.Now()

	alerts, err := domain.FetchRange(ctx, s.source, from, to, s.fetchConcurrency)
	if err != nil {
		s.metrics.RunsTotal.WithLabelValues("fetch_error").Inc()
		return nil, err
	}
	s.metrics.AlertsFetched.Add(float64(len(alerts)))

	users, err := s.store.GetUsers(ctx)
	if err != nil {
		s.metrics.RunsTotal.WithLabelValues("roster_error").Inc()
		return nil, fmt.Errorf("read roster: %w", err)
	}
	s.logger.Info("reconciliation started",
		"from", from.Format(domain.DateLayout),
		"to", to.Format(domain.DateLayout),
		"alerts", len(alerts),
		"users", len(users),
	)

	results := domain.Reconcile(users, alerts, s.matcher)
	matched := s.persist(ctx, results)

	s.metrics.UsersMatched.Add(float64(matched))
	s.metrics.RunsTotal.WithLabelValues("ok").Inc()
	s.metrics.RunDuration.Observe(time.Since(start).Seconds())
	s.metrics.LastRunTime.SetToCurrentTime()
	s.ready.Store(true)

	s.logger.Info("reconciliation finished", "matched_users", matched, "duration", time.Since(start))
	return &Summary{
		From:          from.Format(domain.DateLayout),
		To:            to.Format(domain.DateLayout),
		AlertsFetched: len(alerts),
		UsersMatched:  matched,
		Results:       results,
	}, nil
}

// persist writes the derived last alert for every user with at least one
// match, up to updateConcurrency writes in flight. Users with no matches are
// reported but never written, so a quiet day cannot clobber a previously
// recorded alert. Each write failure is logged, counted, and recorded on
// that user's result only. Notifications go out only when the written value
// differs from the roster's previously stored one; re-running the same day
// rewrites the cell but stays silent. Returns the number of matched users.
func (s *Service) persist(ctx context.Context, results []domain.ReconciliationResult) int {
	matched := 0
	g := new(errgroup.Group)
	g.SetLimit(s.updateConcurrency)

	for i := range results {
		res := &results[i]
		if res.LastAlert == nil {
			s.logger.Debug("no alerts matched", "user", res.Name, "city", res.City)
			continue
		}
		matched++

		g.Go(func() error {
			value := res.LastAlert.Value()
			if err := s.store.UpdateLastAlert(ctx, res.Name, value); err != nil {
				s.logger.Warn("last-alert update failed", "user", res.Name, "error", err)
				s.metrics.UpdateErrors.Inc()
				res.UpdateFailed = true
				res.UpdateError = err.Error()
				return nil
			}
			s.logger.Info("last alert recorded", "user", res.Name, "city", res.City, "last_alert", value)
			if value != res.Previous {
				s.notify(ctx, *res)
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return errors; failures land on results
	return matched
}

func (s *Service) notify(ctx context.Context, res domain.ReconciliationResult) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyLastAlert(ctx, res); err != nil {
		s.logger.Warn("last-alert notification failed", "user", res.Name, "error", err)
		s.metrics.NotifyErrors.Inc()
	}
}
