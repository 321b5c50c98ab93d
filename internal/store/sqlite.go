package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver

	"github.com/keepgoing/tripmap/internal/domain"
)

// SQLite persists the record collection as one JSON payload row in a local
// SQLite database, keyed by the fixed namespace.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures the
// archive table exists. Close the store when done.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store.NewSQLite: open: %w", err)
	}
	// Single writer; a busy timeout avoids spurious SQLITE_BUSY under tests.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.NewSQLite: pragma: %w", err)
	}
	const schema = `
		CREATE TABLE IF NOT EXISTS archive (
			namespace  TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.NewSQLite: create table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveTripRecords upserts the whole collection under the namespace key.
func (s *SQLite) SaveTripRecords(ctx context.Context, records []domain.TripRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store.SQLite.SaveTripRecords: serialize: %w", err)
	}
	const q = `
		INSERT INTO archive (namespace, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, Namespace, string(data), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("store.SQLite.SaveTripRecords: upsert: %w", err)
	}
	return nil
}

// LoadTripRecords reads the collection; nil, nil when nothing was saved yet.
func (s *SQLite) LoadTripRecords(ctx context.Context) ([]domain.TripRecord, error) {
	const q = `SELECT payload FROM archive WHERE namespace = ?`
	var payload string
	err := s.db.QueryRowContext(ctx, q, Namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.SQLite.LoadTripRecords: query: %w", err)
	}
	var records []domain.TripRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("store.SQLite.LoadTripRecords: parse: %w", err)
	}
	return records, nil
}
