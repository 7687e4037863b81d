// Package http exposes the reconciliation trigger plus health, readiness,
// and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
	"github.com/hilaln2210/AlertsAndUsers/internal/reconciler"
)

// Runner executes one reconciliation invocation.
type Runner interface {
	Run(ctx context.Context, from, to time.Time) (*reconciler.Summary, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the /check-alerts trigger and operational endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router. requestTimeout bounds one whole invocation;
// zero disables the bound.
func NewServer(addr string, runner Runner, ready ReadinessChecker, requestTimeout time.Duration, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	// The roster frontend is served from another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/check-alerts", handleCheckAlerts(runner, requestTimeout, logger))
	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	writeTimeout := 30 * time.Second
	if requestTimeout > 0 {
		writeTimeout = requestTimeout + 10*time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type checkAlertsResponse struct {
	Status string `json:"status"`
	*reconciler.Summary
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// handleCheckAlerts runs a reconciliation pass for the requested day range.
// Both bounds are optional: a missing bound defaults to the other one, and
// with neither given the range is today/today.
func handleCheckAlerts(runner Runner, requestTimeout time.Duration, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := parseDayRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		ctx := r.Context()
		if requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, requestTimeout)
			defer cancel()
		}

		summary, err := runner.Run(ctx, from, to)
		if err != nil {
			// Fetch and roster failures are fatal to the invocation:
			// no partial results leave the service.
			logger.Error("reconciliation run failed", "error", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Status: "error", Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, checkAlertsResponse{Status: "ok", Summary: summary})
	}
}

// parseDayRange resolves the from/to query parameters (DD.MM.YYYY) against
// the default of today.
func parseDayRange(fromStr, toStr string) (time.Time, time.Time, error) {
	parse := func(s string) (time.Time, error) {
		d, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: want DD.MM.YYYY", s)
		}
		return d, nil
	}

	var from, to time.Time
	var err error
	switch {
	case fromStr == "" && toStr == "":
		today := domain.Today()
		return today, today, nil
	case toStr == "":
		if from, err = parse(fromStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
		return from, from, nil
	case fromStr == "":
		if to, err = parse(toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
		return to, to, nil
	}

	if from, err = parse(fromStr); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = parse(toStr); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from %s is after to %s", fromStr, toStr)
	}
	return from, to, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
