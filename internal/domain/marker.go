// Package domain contains the core data types for the TripMap itinerary engine.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (planner, trip, archive, store, handler).
package domain

import "time"

// DateFormat is the calendar-date layout used everywhere a date is rendered
// as text (day descriptors, API payloads, record summaries).
const DateFormat = "2006-01-02"

// LatLng is a geographic coordinate pair.
// Validity (lat ∈ [-90,90], lng ∈ [-180,180]) is enforced at the input
// boundary by ValidateCoordinates, not by the type itself.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is a single planned stop on the itinerary.
// IDs are assigned by the trip state, monotonically increasing within a trip,
// and never reused even after deletion.
type Marker struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Time is a free-text clock string ("09:30", "after lunch").
	// It is display data, never parsed or validated as a real time.
	Time   string `json:"time,omitempty"`
	LatLng LatLng `json:"latlng"`
	// Day is the 1-based ordinal of the trip day this stop belongs to.
	Day int `json:"day"`
}

// Route is a derived polyline connecting the markers of one trip day,
// in marker insertion order. Routes are recomputed from markers on every
// mutation and never persisted independently of them.
type Route struct {
	Day    int      `json:"day"`
	Points []LatLng `json:"points"`
}

// Clone returns a deep copy of the route.
func (r Route) Clone() Route {
	out := Route{Day: r.Day}
	if r.Points != nil {
		out.Points = make([]LatLng, len(r.Points))
		copy(out.Points, r.Points)
	}
	return out
}

// CloneMarkers returns a deep copy of a marker slice.
// A nil input yields a nil output.
func CloneMarkers(markers []Marker) []Marker {
	if markers == nil {
		return nil
	}
	out := make([]Marker, len(markers))
	copy(out, markers)
	return out
}

// CloneRoutes returns a deep copy of a route slice, including each
// polyline's points. A nil input yields a nil output.
func CloneRoutes(routes []Route) []Route {
	if routes == nil {
		return nil
	}
	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = r.Clone()
	}
	return out
}

// FormatDate renders t as a calendar date, or "" when t is the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}
