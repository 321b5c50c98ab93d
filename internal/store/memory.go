package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/keepgoing/tripmap/internal/domain"
)

// Memory is an in-process store. It serializes the collection through JSON
// like the durable backends do, so rely-on-copy bugs surface in tests too.
type Memory struct {
	mu      sync.Mutex
	payload []byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// SaveTripRecords replaces the stored collection.
func (m *Memory) SaveTripRecords(_ context.Context, records []domain.TripRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("store.Memory.SaveTripRecords: %w", err)
	}
	m.mu.Lock()
	m.payload = data
	m.mu.Unlock()
	return nil
}

// LoadTripRecords returns the stored collection, nil when nothing was saved.
func (m *Memory) LoadTripRecords(_ context.Context) ([]domain.TripRecord, error) {
	m.mu.Lock()
	data := m.payload
	m.mu.Unlock()
	if data == nil {
		return nil, nil
	}
	var records []domain.TripRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store.Memory.LoadTripRecords: %w", err)
	}
	return records, nil
}
