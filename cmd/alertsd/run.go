package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hilaln2210/AlertsAndUsers/internal/config"
	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
	"github.com/hilaln2210/AlertsAndUsers/internal/observability"
)

var (
	runFrom string
	runTo   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation and print the summary",
	Long: `run performs a single fetch-match-persist cycle for the given date
range and prints the resulting summary as JSON. Dates use dd.mm.yyyy. With
one bound given the range is that single day; with neither, today.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runOnce(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runFrom, "from", "", "start of the date range (dd.mm.yyyy)")
	runCmd.Flags().StringVar(&runTo, "to", "", "end of the date range (dd.mm.yyyy)")
}

func runOnce(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	from, to, err := resolveRange(runFrom, runTo)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(parent, cfg.RequestTimeout)
	defer cancel()

	svc, closer, err := buildService(ctx, cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logger.Error("close collaborators", "error", cerr)
		}
	}()

	summary, err := svc.Run(ctx, from, to)
	if err != nil {
		return fmt.Errorf("reconciliation: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

func resolveRange(fromStr, toStr string) (time.Time, time.Time, error) {
	today := domain.Today()
	from, to := today, today
	var err error
	if fromStr != "" {
		if from, err = time.Parse(domain.DateLayout, fromStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from %q: want dd.mm.yyyy", fromStr)
		}
	}
	if toStr != "" {
		if to, err = time.Parse(domain.DateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to %q: want dd.mm.yyyy", toStr)
		}
	}
	// A single bound means a single day, same as the HTTP route.
	switch {
	case fromStr != "" && toStr == "":
		to = from
	case fromStr == "" && toStr != "":
		from = to
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end %s precedes start %s", to.Format(domain.DateLayout), from.Format(domain.DateLayout))
	}
	return from, to, nil
}
