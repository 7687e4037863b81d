// Package oref implements domain.AlertSource against the public Home Front
// Command alarm-history feed.
package oref

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
	"github.com/hilaln2210/AlertsAndUsers/internal/observability"
)

const historyPath = "/Shared/Ajax/GetAlarmsHistory.aspx"

// Client retrieves alarm history from the feed, one calendar day per request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an alarm-history client. metrics may be nil.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// AlertsForDay fetches every alert record reported on the given day, all
// categories included. An empty or null body is a day without alerts, not an
// error; the feed answers both ways.
func (c *Client) AlertsForDay(ctx context.Context, day time.Time) ([]domain.AlertRecord, error) {
	d := day.Format(domain.DateLayout)
	params := url.Values{
		"lang":     {"he"},
		"fromDate": {d},
		"toDate":   {d},
		"mode":     {"0"},
	}
	fullURL := c.baseURL + historyPath + "?" + params.Encode()

	start := time.Now()
	records, err := c.doRequest(ctx, fullURL)
	c.observe(start, err)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("alarm history fetched", "day", d, "records", len(records))
	return records, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.AlertRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alarm history request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed error: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var records []domain.AlertRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode alarm history: %w", err)
	}
	return records, nil
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.FeedRequests.WithLabelValues(outcome).Inc()
	c.metrics.FeedRequestDuration.Observe(time.Since(start).Seconds())
}
