// Package history persists drained control-interface events to SQLite
// so monitoring sessions can be reviewed later (wpactl events).
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avela/wpactl/internal/events"
)

// Store records control-interface events in SQLite.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// Open opens (and migrates) the event database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database. Safe to call multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// Record inserts one event.
func (s *Store) Record(ctx context.Context, iface string, ev events.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (ts_unix_ms, iface, priority, name, payload, raw)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.ReceivedAt.UnixMilli(), iface, ev.Priority, ev.Name, ev.Payload, ev.Raw)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// Recorded is one stored event row.
type Recorded struct {
	ID       int64
	At       time.Time
	Iface    string
	Priority int
	Name     string
	Payload  string
	Raw      string
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Recorded, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts_unix_ms, iface, priority, name, payload, raw
		FROM events ORDER BY ts_unix_ms DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []Recorded
	for rows.Next() {
		var r Recorded
		var ms int64
		if err := rows.Scan(&r.ID, &ms, &r.Iface, &r.Priority, &r.Name, &r.Payload, &r.Raw); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		r.At = time.UnixMilli(ms)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes events older than the cutoff and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE ts_unix_ms < ?`, olderThan.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	return res.RowsAffected()
}

// migrate brings the schema up to date.
func (s *Store) migrate(ctx context.Context) error {
	currentVersion := 0
	row := s.db.QueryRowContext(ctx,
		`SELECT version FROM schema_meta ORDER BY version DESC LIMIT 1`)
	if err := row.Scan(&currentVersion); err != nil {
		// Missing table or no rows both mean a fresh database.
		currentVersion = 0
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{version: 1, sql: migrationV1},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("migration v%d failed: %w", m.version, err)
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO schema_meta (version, applied_at_unix_ms)
			VALUES (?, ?)
		`, m.version, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.version, err)
		}
	}
	return nil
}

const migrationV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
  version INTEGER PRIMARY KEY,
  applied_at_unix_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts_unix_ms INTEGER NOT NULL,
  iface TEXT NOT NULL,
  priority INTEGER NOT NULL,
  name TEXT NOT NULL,
  payload TEXT NOT NULL DEFAULT '',
  raw TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_unix_ms DESC);
CREATE INDEX IF NOT EXISTS idx_events_name ON events(name);
`
