// Command alertsd reconciles the Home Front Command alarm-history feed
// against the subscriber roster, either as a long-running HTTP service
// (serve) or as a one-shot invocation (run).
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	kafkaadapter "github.com/hilaln2210/AlertsAndUsers/internal/adapter/kafka"
	"github.com/hilaln2210/AlertsAndUsers/internal/adapter/oref"
	"github.com/hilaln2210/AlertsAndUsers/internal/adapter/sheets"
	"github.com/hilaln2210/AlertsAndUsers/internal/adapter/sqlite"
	"github.com/hilaln2210/AlertsAndUsers/internal/config"
	"github.com/hilaln2210/AlertsAndUsers/internal/observability"
	"github.com/hilaln2210/AlertsAndUsers/internal/reconciler"
)

var rootCmd = &cobra.Command{
	Use:   "alertsd",
	Short: "Civil-alert roster reconciliation service",
	Long: `alertsd polls the Home Front Command alarm-history feed, matches
reported alert locations against the subscriber roster by city name, and
records each subscriber's most recent matching alert in the roster store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildService wires the configured collaborators into a reconciler service.
// The returned closer releases the roster store and notifier.
func buildService(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*reconciler.Service, io.Closer, error) {
	var (
		store   reconciler.RosterStore
		closers multiCloser
	)
	switch cfg.RosterBackend {
	case config.BackendSheets:
		s, err := sheets.NewStore(ctx, cfg.GoogleCredentialsFile, cfg.SheetsSpreadsheetID, cfg.SheetsWorksheet, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("sheets roster store: %w", err)
		}
		store = s
		logger.Info("roster backend: google sheets", "spreadsheet", cfg.SheetsSpreadsheetID, "worksheet", cfg.SheetsWorksheet)
	case config.BackendSQLite:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite roster store: %w", err)
		}
		store = s
		closers = append(closers, s)
		logger.Info("roster backend: sqlite", "path", cfg.SQLitePath)
	}

	var notifier reconciler.Notifier
	if cfg.KafkaEnabled {
		n := kafkaadapter.NewNotifier(cfg.KafkaBrokers, cfg.KafkaNotifyTopic, logger)
		notifier = n
		closers = append(closers, n)
		logger.Info("kafka notifications enabled", "topic", cfg.KafkaNotifyTopic)
	} else {
		logger.Info("kafka notifications disabled")
	}

	source := oref.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout, logger, metrics)
	svc := reconciler.New(source, store, notifier, logger, metrics, cfg.FetchConcurrency, cfg.UpdateConcurrency)
	return svc, closers, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var firstErr error
	for _, c := range m {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
