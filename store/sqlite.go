// Package store persists the saved projection, the trade log and a few
// preferences as named records in a SQLite key-value table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("store: no saved projection")
	ErrEntryNotFound = errors.New("store: log entry not found")
	ErrUnknownPref   = errors.New("store: unknown preference")
)

type SQLite struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

type Option func(*SQLite)

func WithLogger(l *slog.Logger) Option {
	return func(s *SQLite) { s.log = l }
}

// WithClock overrides time.Now for snapshot and export timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLite) { s.now = now }
}

func NewSQLite(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &SQLite{
		db:  db,
		log: slog.New(slog.DiscardHandler),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the raw value of key, ok=false if it was never set.
func (s *SQLite) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Put overwrites key. The last writer wins.
func (s *SQLite) Put(ctx context.Context, key, value string) error {
	return put(ctx, s.db, key, value, s.now())
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, db execer, key, value string, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Pref returns a preference value; ok=false when unset.
func (s *SQLite) Pref(ctx context.Context, key string) (string, bool, error) {
	if !slices.Contains(Prefs, key) {
		return "", false, fmt.Errorf("%w: %s", ErrUnknownPref, key)
	}
	return s.Get(ctx, key)
}

func (s *SQLite) SetPref(ctx context.Context, key, value string) error {
	if !slices.Contains(Prefs, key) {
		return fmt.Errorf("%w: %s", ErrUnknownPref, key)
	}
	return s.Put(ctx, key, strings.TrimSpace(value))
}

// Usage reports the stored size in bytes of every key.
func (s *SQLite) Usage(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, length(CAST(value AS BLOB)) FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			key  string
			size int
		)
		if err := rows.Scan(&key, &size); err != nil {
			return nil, err
		}
		out[key] = size
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
