package domain_test

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepgoing/tripmap/internal/domain"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr string
	}{
		{"origin", 0, 0, ""},
		{"lat boundary high", 90, 0, ""},
		{"lat boundary low", -90, 0, ""},
		{"lng boundary high", 0, 180, ""},
		{"lng boundary low", 0, -180, ""},
		{"lat too high", 90.0001, 0, "latitude"},
		{"lat too low", -91, 0, "latitude"},
		{"lng too high", 0, 181, "longitude"},
		{"lng too low", 0, -180.5, "longitude"},
		{"nan lat", math.NaN(), 0, "NaN"},
		{"nan lng", 0, math.NaN(), "NaN"},
		{"inf lat", math.Inf(1), 0, "infinite"},
		{"neg inf lng", 0, math.Inf(-1), "infinite"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateCoordinates(tc.lat, tc.lng)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateRequired(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		assert.NoError(t, domain.ValidateRequired(map[string]string{"name": "x"}))
	})

	t.Run("blank counts as missing", func(t *testing.T) {
		err := domain.ValidateRequired(map[string]string{"name": "   "})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("missing fields are reported sorted", func(t *testing.T) {
		err := domain.ValidateRequired(map[string]string{
			"startDate": "",
			"endDate":   "",
			"name":      "present",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endDate is required, startDate is required")
	})
}

func TestErrInvalidRange_IsAValidationError(t *testing.T) {
	assert.ErrorIs(t, domain.ErrInvalidRange, domain.ErrValidation)
}

func TestNewRecordID(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	id := domain.NewRecordID(now)

	assert.Regexp(t, regexp.MustCompile(`^trip-1719835200000-[0-9a-f]{9}$`), id)
	assert.NotEqual(t, id, domain.NewRecordID(now), "suffix keeps same-millisecond IDs distinct")
}

func TestTripRecordClone_IsDeep(t *testing.T) {
	updated := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	rec := domain.TripRecord{
		ID:        "trip-1-abc",
		UpdatedAt: &updated,
		Markers:   []domain.Marker{{ID: 1, Name: "Lisbon"}},
		Routes:    []domain.Route{{Day: 1, Points: []domain.LatLng{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}}},
	}

	clone := rec.Clone()
	clone.Markers[0].Name = "changed"
	clone.Routes[0].Points[0].Lat = 99
	*clone.UpdatedAt = updated.Add(time.Hour)

	assert.Equal(t, "Lisbon", rec.Markers[0].Name)
	assert.Equal(t, 1.0, rec.Routes[0].Points[0].Lat)
	assert.True(t, rec.UpdatedAt.Equal(updated))
}
