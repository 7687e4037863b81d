// Package sqlite implements the roster store on an embedded SQLite database,
// the backend for local runs and deployments without a Google Sheets roster.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"github.com/hilaln2210/AlertsAndUsers/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	name       TEXT PRIMARY KEY,
	city       TEXT NOT NULL,
	last_alert TEXT NOT NULL DEFAULT ''
);`

// Store keeps the subscriber roster in a users table. Roster order is
// insertion (rowid) order.
type Store struct {
	conn *sql.DB
}

// New opens the roster database at path, creating the schema if needed.
// Use ":memory:" for tests.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open roster database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping roster database: %w", err)
	}
	// WAL keeps roster reads available while an update batch is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create roster schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// GetUsers returns the roster in insertion order.
func (s *Store) GetUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT name, city, last_alert FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Name, &u.City, &u.LastAlert); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return users, nil
}

// UpdateLastAlert sets the named user's last_alert. The write is idempotent;
// an absent user reports a *domain.UpdateError wrapping ErrUserNotFound.
func (s *Store) UpdateLastAlert(ctx context.Context, name, value string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE users SET last_alert = ? WHERE name = ?`, value, name)
	if err != nil {
		return &domain.UpdateError{Name: name, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.UpdateError{Name: name, Err: err}
	}
	if affected == 0 {
		return &domain.UpdateError{Name: name, Err: domain.ErrUserNotFound}
	}
	return nil
}

// AddUser inserts or replaces a roster entry. The roster's lifecycle is
// owned outside the reconciler; this exists for seeding and tests.
func (s *Store) AddUser(ctx context.Context, u domain.User) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (name, city, last_alert) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET city = excluded.city`,
		u.Name, u.City, u.LastAlert)
	if err != nil {
		return fmt.Errorf("add roster user %q: %w", u.Name, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
