package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/keepgoing/tripmap/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this instead of *pgxpool.Pool directly lets integration
// tests pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres persists the record collection as one JSONB payload row in the
// trip_records_archive table created by the goose migrations.
type Postgres struct {
	db db
}

// NewPostgres constructs a store backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewPostgres(db db) *Postgres {
	return &Postgres{db: db}
}

// SaveTripRecords upserts the whole collection under the namespace key.
func (s *Postgres) SaveTripRecords(ctx context.Context, records []domain.TripRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store.Postgres.SaveTripRecords: serialize: %w", err)
	}
	const q = `
		INSERT INTO trip_records_archive (namespace, payload, updated_at)
		VALUES (@namespace, @payload, now())
		ON CONFLICT (namespace) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at`
	args := pgx.NamedArgs{"namespace": Namespace, "payload": data}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("store.Postgres.SaveTripRecords: upsert: %w", err)
	}
	return nil
}

// LoadTripRecords reads the collection; nil, nil when nothing was saved yet.
func (s *Postgres) LoadTripRecords(ctx context.Context) ([]domain.TripRecord, error) {
	const q = `SELECT payload FROM trip_records_archive WHERE namespace = @namespace`
	var payload []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"namespace": Namespace}).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Postgres.LoadTripRecords: query: %w", err)
	}
	var records []domain.TripRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("store.Postgres.LoadTripRecords: parse: %w", err)
	}
	return records, nil
}
