package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepgoing/tripmap/internal/archive"
	"github.com/keepgoing/tripmap/internal/domain"
	"github.com/keepgoing/tripmap/internal/trip"
)

// seedTrip fills the live state with a small three-day trip.
func seedTrip(h *harness) {
	h.state.SetName("Summer in Portugal")
	h.state.SetBudget(1500)
	h.state.SetDates(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC))
	h.state.AddMarker(trip.MarkerInput{Name: "Lisbon", LatLng: domain.LatLng{Lat: 38.7223, Lng: -9.1393}, Day: 1})
}

func TestCreateRecord_SnapshotsLiveTrip(t *testing.T) {
	h := newHarness(t)
	seedTrip(h)

	rec := h.do(t, http.MethodPost, "/api/records/", `{"name":"Saved Trip"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody[domain.TripRecord](t, rec)
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "Saved Trip", body.Name)
	assert.Equal(t, "Lisbon", body.Destination)
	assert.Equal(t, 3, body.Duration)
	assert.Equal(t, 1500.0, body.Budget)
	require.Len(t, body.Markers, 1)
}

func TestCreateRecord_MalformedDateRejected(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/records/", `{"startDate":"July 1st"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "startDate")
}

func TestListRecords_NewestFirstAndFiltered(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.archive.Add(ctx, archive.RecordInput{Name: "Alps Hike", Destination: "Austria"})
	h.archive.Add(ctx, archive.RecordInput{Name: "City Break", Destination: "paris, france"})

	t.Run("all", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/records/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		records := decodeBody[[]domain.TripRecord](t, rec)
		require.Len(t, records, 2)
		assert.Equal(t, "City Break", records[0].Name)
	})

	t.Run("filtered case-insensitively", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/records/?q=PARIS", "")
		require.Equal(t, http.StatusOK, rec.Code)
		records := decodeBody[[]domain.TripRecord](t, rec)
		require.Len(t, records, 1)
		assert.Equal(t, "City Break", records[0].Name)
	})

	t.Run("no matches is an empty list, not null", func(t *testing.T) {
		rec := h.do(t, http.MethodGet, "/api/records/?q=antarctica", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestGetRecord(t *testing.T) {
	h := newHarness(t)
	saved := h.archive.Add(context.Background(), archive.RecordInput{Name: "findable"})

	rec := h.do(t, http.MethodGet, "/api/records/"+saved.ID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "findable", decodeBody[domain.TripRecord](t, rec).Name)
}

func TestGetRecord_UnknownIDIs404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/records/trip-0-missing00", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trip record not found", errorMessage(t, rec))
}

func TestPatchRecord_MergesFields(t *testing.T) {
	h := newHarness(t)
	saved := h.archive.Add(context.Background(), archive.RecordInput{Name: "before", Destination: "Lisbon"})

	rec := h.do(t, http.MethodPatch, "/api/records/"+saved.ID, `{"name":"after","budget":999}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[domain.TripRecord](t, rec)
	assert.Equal(t, "after", body.Name)
	assert.Equal(t, 999.0, body.Budget)
	assert.Equal(t, "Lisbon", body.Destination, "absent fields survive")
	assert.NotNil(t, body.UpdatedAt)
}

func TestPatchRecord_UnknownIDIs404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPatch, "/api/records/trip-0-missing00", `{"name":"x"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRecord_AlwaysSucceeds(t *testing.T) {
	h := newHarness(t)
	saved := h.archive.Add(context.Background(), archive.RecordInput{})

	require.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/records/"+saved.ID, "").Code)
	assert.Empty(t, h.archive.Records())

	// Absent records delete as a no-op.
	assert.Equal(t, http.StatusNoContent, h.do(t, http.MethodDelete, "/api/records/"+saved.ID, "").Code)
}

func TestRestoreRecord(t *testing.T) {
	h := newHarness(t)
	seedTrip(h)
	saved := h.archive.Add(context.Background(), archive.RecordInput{Name: "saved"})

	reset := h.do(t, http.MethodPost, "/api/state/reset", "")
	require.Equal(t, http.StatusNoContent, reset.Code)
	require.Empty(t, h.state.Markers())

	rec := h.do(t, http.MethodPost, "/api/records/"+saved.ID+"/restore", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "saved", h.state.Name())
	require.Len(t, h.state.Markers(), 1)
	assert.Equal(t, "Lisbon", h.state.Markers()[0].Name)
}

func TestRestoreRecord_UnknownIDIs404(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/records/trip-0-missing00/restore", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
