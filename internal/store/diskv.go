package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"github.com/keepgoing/tripmap/internal/domain"
)

// Diskv persists the record collection through a diskv key-value directory,
// with the whole collection serialized under the fixed Namespace key.
type Diskv struct {
	d *diskv.Diskv
}

// NewDiskv returns a store rooted at basePath. The directory is created
// lazily on first write.
func NewDiskv(basePath string) *Diskv {
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// SaveTripRecords writes the whole collection under the namespace key.
func (s *Diskv) SaveTripRecords(_ context.Context, records []domain.TripRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store.Diskv.SaveTripRecords: serialize: %w", err)
	}
	if err := s.d.Write(Namespace, data); err != nil {
		return fmt.Errorf("store.Diskv.SaveTripRecords: write: %w", err)
	}
	return nil
}

// LoadTripRecords reads the collection. An absent key means nothing has
// been saved yet and yields nil, nil.
func (s *Diskv) LoadTripRecords(_ context.Context) ([]domain.TripRecord, error) {
	if !s.d.Has(Namespace) {
		return nil, nil
	}
	data, err := s.d.Read(Namespace)
	if err != nil {
		return nil, fmt.Errorf("store.Diskv.LoadTripRecords: read: %w", err)
	}
	var records []domain.TripRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store.Diskv.LoadTripRecords: parse: %w", err)
	}
	return records, nil
}
