package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keepgoing/tripmap/internal/domain"
)

// File persists the record collection as one pretty-printed JSON file.
// The parent directory is created on first save.
type File struct {
	path string
}

// NewFile returns a store writing to path. The file named Namespace + ".json"
// convention is the caller's choice; any path works.
func NewFile(path string) *File {
	return &File{path: path}
}

// SaveTripRecords writes the whole collection, replacing the previous file.
func (f *File) SaveTripRecords(_ context.Context, records []domain.TripRecord) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("store.File.SaveTripRecords: create dir: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store.File.SaveTripRecords: serialize: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("store.File.SaveTripRecords: write: %w", err)
	}
	return nil
}

// LoadTripRecords reads the collection. A missing file is not an error —
// it simply means nothing has been saved yet.
func (f *File) LoadTripRecords(_ context.Context) ([]domain.TripRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store.File.LoadTripRecords: read: %w", err)
	}
	var records []domain.TripRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store.File.LoadTripRecords: parse: %w", err)
	}
	return records, nil
}
