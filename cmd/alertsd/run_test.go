package main

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
)

func TestResolveRange(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	tests := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{name: "neither bound defaults to today", wantFrom: "05.01.2024", wantTo: "05.01.2024"},
		{name: "both bounds", from: "01.01.2024", to: "03.01.2024", wantFrom: "01.01.2024", wantTo: "03.01.2024"},
		{name: "from only is a single day", from: "02.01.2024", wantFrom: "02.01.2024", wantTo: "02.01.2024"},
		{name: "to only is a single day", to: "02.01.2024", wantFrom: "02.01.2024", wantTo: "02.01.2024"},
		{name: "inverted range", from: "03.01.2024", to: "01.01.2024", wantErr: true},
		{name: "bad date", from: "2024-01-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := resolveRange(tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from.Format(domain.DateLayout))
			assert.Equal(t, tt.wantTo, to.Format(domain.DateLayout))
		})
	}
}
