// Package sqlite persists the event list in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"github.com/gyaneshwarpardhi/behaviour/internal/event"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements store.Persister on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One device, one writer.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: setting pragma %q: %w", pragma, err)
		}
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite: setting dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns every event, oldest first, in the order they were saved.
func (s *Store) Load(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, category, points, notes, ts, ts_nsec FROM events ORDER BY ts, ts_nsec, seq`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load: %w", err)
	}
	defer rows.Close()

	events := []event.Event{}
	for rows.Next() {
		var (
			e         event.Event
			sec, nsec int64
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.Category, &e.Points, &e.Notes, &sec, &nsec); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		e.Timestamp = time.Unix(sec, nsec).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: load: %w", err)
	}
	return events, nil
}

// Save replaces the stored list with events in a single transaction.
func (s *Store) Save(ctx context.Context, events []event.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (id, type, category, points, notes, ts, ts_nsec) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		// UnixNano overflows outside 1678-2262, so seconds and nanoseconds are kept apart.
		ts := e.Timestamp.UTC()
		if _, err := stmt.ExecContext(ctx, e.ID, string(e.Type), e.Category, e.Points, e.Notes, ts.Unix(), int64(ts.Nanosecond())); err != nil {
			return fmt.Errorf("sqlite: insert %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
