package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripRecord is an archived snapshot of an itinerary.
// The ID is immutable; the content may be updated in place.
// Markers and Routes are owned by the record — they are deep copies taken at
// save time and never alias the live trip state's slices.
type TripRecord struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	Name        string    `json:"name"`
	Destination string    `json:"destination,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Description string    `json:"description,omitempty"`
	Budget      float64   `json:"budget"`
	// Duration is the inclusive day count of the trip at save time.
	Duration int      `json:"duration"`
	Markers  []Marker `json:"markers"`
	Routes   []Route  `json:"routes"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Clone returns a deep copy of the record, including markers and routes.
func (r TripRecord) Clone() TripRecord {
	out := r
	out.Markers = CloneMarkers(r.Markers)
	out.Routes = CloneRoutes(r.Routes)
	if r.UpdatedAt != nil {
		ts := *r.UpdatedAt
		out.UpdatedAt = &ts
	}
	return out
}

// NewRecordID generates a trip record identifier of the form
// "trip-<unix-millis>-<9 char suffix>". The random suffix keeps IDs unique
// even when several records are created within the same millisecond.
func NewRecordID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("trip-%d-%s", now.UnixMilli(), suffix)
}
