// Package store provides the durable persistence adapters for the trip
// record archive. Every adapter stores the whole serialized collection under
// one fixed namespace key and is interchangeable behind archive.Store:
// memory (tests and ephemeral runs), a JSON file, a diskv key-value
// directory, SQLite, and Postgres.
package store

import "github.com/keepgoing/tripmap/internal/archive"

// Namespace is the fixed key the record collection is stored under in every
// keyed backend.
const Namespace = "trip-records"

// Compile-time checks: every adapter must satisfy the archive's contract.
var (
	_ archive.Store = (*Memory)(nil)
	_ archive.Store = (*File)(nil)
	_ archive.Store = (*Diskv)(nil)
	_ archive.Store = (*SQLite)(nil)
	_ archive.Store = (*Postgres)(nil)
)
