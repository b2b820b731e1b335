// Package journal provides a SQLite-backed delivery journal for webhook
// events. Uses WAL mode for concurrent reads and crash-safe writes.
//
// The journal is observability data only: session and vote state live
// exclusively on the remote platform and are never read back from here.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Entry is one recorded webhook delivery and its processing result.
type Entry struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Event      string    `json:"event"`
	ActionType string    `json:"action_type,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	Outcome    string    `json:"outcome,omitempty"`
	Penalty    int       `json:"penalty_seconds"`
	Error      string    `json:"error,omitempty"`
}

// DB wraps the journal's SQLite connection.
type DB struct {
	db *sql.DB
}

// Open creates or opens the journal database at dir/journal.db.
// Enables WAL mode and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS webhook_events (
			id              TEXT PRIMARY KEY,
			received_at     INTEGER NOT NULL,
			event           TEXT NOT NULL,
			action_type     TEXT NOT NULL DEFAULT '',
			session_id      TEXT NOT NULL DEFAULT '',
			outcome         TEXT NOT NULL DEFAULT '',
			penalty_seconds INTEGER NOT NULL DEFAULT 0,
			error           TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_webhook_events_received
			ON webhook_events(received_at)`,
	}
	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Record persists one delivery. A zero ID or timestamp is filled in.
func (d *DB) Record(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now()
	}
	_, err := d.db.Exec(
		`INSERT INTO webhook_events
			(id, received_at, event, action_type, session_id, outcome, penalty_seconds, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ReceivedAt.Unix(), e.Event, e.ActionType, e.SessionID, e.Outcome, e.Penalty, e.Error,
	)
	if err != nil {
		return e, fmt.Errorf("insert journal entry: %w", err)
	}
	return e, nil
}

// Recent returns the newest entries, most recent first.
func (d *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, received_at, event, action_type, session_id, outcome, penalty_seconds, error
		   FROM webhook_events
		  ORDER BY received_at DESC, id DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Event, &e.ActionType, &e.SessionID, &e.Outcome, &e.Penalty, &e.Error); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.ReceivedAt = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
