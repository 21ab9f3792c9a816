// Package eventstore persists build lifecycle events to SQLite so daemon
// restarts keep the build history.
package eventstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	pberrors "git.home.luguber.info/inful/pybuilder/internal/errors"
)

// Event is one persisted build lifecycle record.
type Event struct {
	ID      int64
	JobID   string
	Type    string
	At      time.Time
	Payload []byte
}

// Store is a SQLite-backed append-only event log.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (and initializes) the store at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pberrors.EventStoreFailed("open", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, pberrors.EventStoreFailed("initialize", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS build_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		at INTEGER NOT NULL,
		payload BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_build_events_job ON build_events(job_id);
	CREATE INDEX IF NOT EXISTS idx_build_events_at ON build_events(at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one event. Events without a job scope (registry changes)
// may pass an empty jobID.
func (s *Store) Append(ctx context.Context, jobID, eventType string, at time.Time, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO build_events (job_id, event_type, at, payload) VALUES (?, ?, ?, ?)",
		jobID, eventType, at.Unix(), payload,
	)
	if err != nil {
		return pberrors.EventStoreFailed("append", err)
	}
	return nil
}

// ByJob returns every event of one build job in append order.
func (s *Store) ByJob(ctx context.Context, jobID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, job_id, event_type, at, payload FROM build_events WHERE job_id = ? ORDER BY id",
		jobID,
	)
	if err != nil {
		return nil, pberrors.EventStoreFailed("query", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Recent returns the latest limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, job_id, event_type, at, payload FROM build_events ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, pberrors.EventStoreFailed("query", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var atUnix int64
		if err := rows.Scan(&e.ID, &e.JobID, &e.Type, &atUnix, &e.Payload); err != nil {
			return nil, pberrors.EventStoreFailed("scan", err)
		}
		e.At = time.Unix(atUnix, 0)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, pberrors.EventStoreFailed("iterate", err)
	}
	return events, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
