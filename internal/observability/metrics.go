package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// reconciliation service.
type Metrics struct {
	RunsTotal   *prometheus.CounterVec // labels: outcome={ok,fetch_error,roster_error}
	RunDuration prometheus.Histogram
	LastRunTime prometheus.Gauge

	// Feed metrics.
	FeedRequests        *prometheus.CounterVec // labels: outcome={success,error}
	FeedRequestDuration prometheus.Histogram
	AlertsFetched       prometheus.Counter

	// Roster metrics.
	UsersMatched prometheus.Counter
	UpdateErrors prometheus.Counter
	NotifyErrors prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.LastRunTime,
		m.FeedRequests,
		m.FeedRequestDuration,
		m.AlertsFetched,
		m.UsersMatched,
		m.UpdateErrors,
		m.NotifyErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alerts",
			Name:      "reconcile_runs_total",
			Help:      "Reconciliation invocations by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alerts",
			Name:      "reconcile_run_duration_seconds",
			Help:      "Duration of a complete fetch-reconcile-update invocation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alerts",
			Name:      "last_successful_run_timestamp_seconds",
			Help:      "Unix time of the last successful reconciliation run.",
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alerts",
			Name:      "feed_requests_total",
			Help:      "Alarm-history feed requests by outcome.",
		}, []string{"outcome"}),
		FeedRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alerts",
			Name:      "feed_request_duration_seconds",
			Help:      "Alarm-history feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AlertsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alerts",
			Name:      "alerts_fetched_total",
			Help:      "Rocket-category alert records fetched from the feed.",
		}),
		UsersMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alerts",
			Name:      "users_matched_total",
			Help:      "Users with at least one matched alert, summed over runs.",
		}),
		UpdateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alerts",
			Name:      "roster_update_errors_total",
			Help:      "Failed last-alert writes to the roster store.",
		}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alerts",
			Name:      "notify_errors_total",
			Help:      "Failed last-alert change notifications.",
		}),
	}
}
