package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepgoing/tripmap/internal/archive"
	"github.com/keepgoing/tripmap/internal/domain"
	"github.com/keepgoing/tripmap/internal/store"
)

func sampleRecords() []domain.TripRecord {
	created := time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC)
	return []domain.TripRecord{
		{
			ID:          "trip-1719837000000-abc123def",
			CreatedAt:   created,
			Name:        "Coastal Loop",
			Destination: "Lisbon",
			StartDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
			Budget:      1500,
			Duration:    5,
			Markers: []domain.Marker{
				{ID: 1, Name: "Lisbon", LatLng: domain.LatLng{Lat: 38.7223, Lng: -9.1393}, Day: 1},
				{ID: 2, Name: "Sintra", LatLng: domain.LatLng{Lat: 38.8029, Lng: -9.3817}, Day: 1},
			},
			Routes: []domain.Route{
				{Day: 1, Points: []domain.LatLng{{Lat: 38.7223, Lng: -9.1393}, {Lat: 38.8029, Lng: -9.3817}}},
			},
		},
		{
			ID:        "trip-1719836000000-123456789",
			CreatedAt: created.Add(-time.Hour),
			Name:      "Older Trip",
		},
	}
}

// roundTrip exercises a store through the archive.Store contract: an empty
// load, then a save/load cycle that must reproduce the collection exactly.
func roundTrip(t *testing.T, s archive.Store) {
	t.Helper()
	ctx := context.Background()

	before, err := s.LoadTripRecords(ctx)
	require.NoError(t, err)
	assert.Nil(t, before, "a fresh store holds nothing")

	want := sampleRecords()
	require.NoError(t, s.SaveTripRecords(ctx, want))

	got, err := s.LoadTripRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.Equal(t, want[i].Markers, got[i].Markers)
		assert.Equal(t, want[i].Routes, got[i].Routes)
	}

	// A second save replaces, never appends.
	require.NoError(t, s.SaveTripRecords(ctx, want[:1]))
	got, err = s.LoadTripRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemory_RoundTrip(t *testing.T) {
	roundTrip(t, store.NewMemory())
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", store.Namespace+".json")
	roundTrip(t, store.NewFile(path))
}

func TestFile_CorruptPayloadIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.NewFile(path).LoadTripRecords(context.Background())
	assert.Error(t, err)
}

func TestDiskv_RoundTrip(t *testing.T) {
	roundTrip(t, store.NewDiskv(t.TempDir()))
}

func TestSQLite_RoundTrip(t *testing.T) {
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	roundTrip(t, s)
}

func TestSQLite_ReopenSeesSavedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	first, err := store.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveTripRecords(context.Background(), sampleRecords()))
	require.NoError(t, first.Close())

	second, err := store.NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	got, err := second.LoadTripRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
