package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Roster store backends.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// Alarm-history feed.
	FeedBaseURL      string
	FeedTimeout      time.Duration
	FetchConcurrency int

	// Roster store.
	RosterBackend         string
	SheetsSpreadsheetID   string
	SheetsWorksheet       string
	GoogleCredentialsFile string
	SQLitePath            string
	UpdateConcurrency     int

	// Kafka last-alert change notifications.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaNotifyTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset and validating cross-field requirements.
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := durationEnv("REQUEST_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	feedTimeout, err := durationEnv("FEED_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	fetchConcurrency, err := positiveIntEnv("FETCH_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	updateConcurrency, err := positiveIntEnv("UPDATE_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RequestTimeout:  requestTimeout,

		FeedBaseURL:      envOrDefault("FEED_BASE_URL", "https://alerts-history.oref.org.il"),
		FeedTimeout:      feedTimeout,
		FetchConcurrency: fetchConcurrency,

		RosterBackend:         envOrDefault("ROSTER_BACKEND", BackendSQLite),
		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		SheetsWorksheet:       envOrDefault("SHEETS_WORKSHEET", "Users"),
		GoogleCredentialsFile: envOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SQLitePath:            envOrDefault("SQLITE_PATH", "data/roster.db"),
		UpdateConcurrency:     updateConcurrency,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaNotifyTopic: envOrDefault("KAFKA_NOTIFY_TOPIC", "last-alert-changes"),
	}

	if cfg.FeedBaseURL == "" {
		return nil, errors.New("FEED_BASE_URL is required")
	}
	switch cfg.RosterBackend {
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is required for the sqlite roster backend")
		}
	case BackendSheets:
		if cfg.SheetsSpreadsheetID == "" {
			return nil, errors.New("SHEETS_SPREADSHEET_ID is required for the sheets roster backend")
		}
		if cfg.GoogleCredentialsFile == "" {
			return nil, errors.New("GOOGLE_CREDENTIALS_FILE is required for the sheets roster backend")
		}
	default:
		return nil, fmt.Errorf("unknown ROSTER_BACKEND %q (want %q or %q)", cfg.RosterBackend, BackendSheets, BackendSQLite)
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaNotifyTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_NOTIFY_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func positiveIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
