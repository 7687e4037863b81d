// Package sheets implements the roster store against a Google Sheets
// worksheet, the store the subscriber roster actually lives in.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
)

// Worksheet column headers the roster requires, matched case-insensitively
// against the first row.
const (
	colName      = "name"
	colCity      = "city"
	colLastAlert = "last_alert"
)

// Store reads and updates the subscriber roster kept in one worksheet. The
// worksheet's first row is a header; each following row is one user.
//
// Updates address a cell by the row position captured during the last
// GetUsers call, so an invocation must read the roster before writing.
// That is the only flow the reconciler has.
type Store struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	worksheet     string
	logger        *slog.Logger

	mu           sync.Mutex
	rows         map[string]int // user name -> 1-based sheet row
	lastAlertCol int            // 0-based column index of last_alert
}

// NewStore builds a Store authenticated with a service-account credentials
// file.
func NewStore(ctx context.Context, credentialsFile, spreadsheetID, worksheet string, logger *slog.Logger) (*Store, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		logger:        logger,
	}, nil
}

// GetUsers reads the whole worksheet and returns the roster in sheet order.
func (s *Store) GetUsers(ctx context.Context) ([]domain.User, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read roster worksheet: %w", err)
	}

	users, rows, lastAlertCol, err := parseRoster(resp.Values)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rows = rows
	s.lastAlertCol = lastAlertCol
	s.mu.Unlock()

	return users, nil
}

// UpdateLastAlert writes value into the named user's last_alert cell.
// Re-sending the same value rewrites the cell with identical content, so the
// operation is idempotent. A name missing from the last roster read reports
// a *domain.UpdateError wrapping domain.ErrUserNotFound.
func (s *Store) UpdateLastAlert(ctx context.Context, name, value string) error {
	s.mu.Lock()
	row, ok := s.rows[name]
	col := s.lastAlertCol
	s.mu.Unlock()
	if !ok {
		return &domain.UpdateError{Name: name, Err: domain.ErrUserNotFound}
	}

	cellRef := fmt.Sprintf("%s!%s%d", s.worksheet, columnLetter(col), row)
	body := &sheetsapi.ValueRange{Values: [][]any{{value}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cellRef, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return &domain.UpdateError{Name: name, Err: err}
	}
	return nil
}

// parseRoster turns raw worksheet values into users plus the bookkeeping
// UpdateLastAlert needs: name -> 1-based row, and the last_alert column.
// Rows without a name are skipped (sheet padding).
func parseRoster(values [][]any) ([]domain.User, map[string]int, int, error) {
	if len(values) == 0 {
		return nil, nil, 0, fmt.Errorf("roster worksheet is empty")
	}

	cols := map[string]int{}
	for i, h := range values[0] {
		cols[strings.ToLower(strings.TrimSpace(cellString(h)))] = i
	}
	for _, required := range []string{colName, colCity, colLastAlert} {
		if _, ok := cols[required]; !ok {
			return nil, nil, 0, fmt.Errorf("roster worksheet is missing the %q column", required)
		}
	}

	var users []domain.User
	rows := map[string]int{}
	for i, row := range values[1:] {
		name := strings.TrimSpace(cell(row, cols[colName]))
		if name == "" {
			continue
		}
		users = append(users, domain.User{
			Name:      name,
			City:      strings.TrimSpace(cell(row, cols[colCity])),
			LastAlert: strings.TrimSpace(cell(row, cols[colLastAlert])),
		})
		// Header is sheet row 1, first data row is 2.
		rows[name] = i + 2
	}
	return users, rows, cols[colLastAlert], nil
}

func cell(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return cellString(row[idx])
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}

// columnLetter converts a 0-based column index to A1 notation: 0 -> A,
// 25 -> Z, 26 -> AA.
func columnLetter(idx int) string {
	letters := ""
	for idx >= 0 {
		letters = string(rune('A'+idx%26)) + letters
		idx = idx/26 - 1
	}
	return letters
}
