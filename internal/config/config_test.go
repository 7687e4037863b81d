package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "https://alerts-history.oref.org.il", cfg.FeedBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, 4, cfg.UpdateConcurrency)
	assert.Equal(t, BackendSQLite, cfg.RosterBackend)
	assert.Equal(t, "data/roster.db", cfg.SQLitePath)
	assert.Equal(t, "Users", cfg.SheetsWorksheet)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "last-alert-changes", cfg.KafkaNotifyTopic)
}

func TestLoadCustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REQUEST_TIMEOUT", "2m")
	t.Setenv("FEED_BASE_URL", "http://localhost:8181")
	t.Setenv("FEED_TIMEOUT", "3s")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("UPDATE_CONCURRENCY", "2")
	t.Setenv("ROSTER_BACKEND", "sheets")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-123")
	t.Setenv("SHEETS_WORKSHEET", "Roster")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "/etc/creds.json")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_NOTIFY_TOPIC", "alerts-out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "http://localhost:8181", cfg.FeedBaseURL)
	assert.Equal(t, 3*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 2, cfg.UpdateConcurrency)
	assert.Equal(t, BackendSheets, cfg.RosterBackend)
	assert.Equal(t, "sheet-123", cfg.SheetsSpreadsheetID)
	assert.Equal(t, "Roster", cfg.SheetsWorksheet)
	assert.Equal(t, "/etc/creds.json", cfg.GoogleCredentialsFile)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "alerts-out", cfg.KafkaNotifyTopic)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"negative request timeout", "REQUEST_TIMEOUT", "-5s"},
		{"bad feed timeout", "FEED_TIMEOUT", "fast"},
		{"zero fetch concurrency", "FETCH_CONCURRENCY", "0"},
		{"non-numeric update concurrency", "UPDATE_CONCURRENCY", "many"},
		{"unknown roster backend", "ROSTER_BACKEND", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadSheetsRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("ROSTER_BACKEND", "sheets")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHEETS_SPREADSHEET_ID")
}

func TestLoadKafkaRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
