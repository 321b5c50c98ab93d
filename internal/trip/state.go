// Package trip implements the live itinerary state: the single editable trip
// being composed. It owns the flat marker set, derives day schedules and
// per-day routes on demand, and fans every mutation out to subscribed
// observers through the notification bus in notify.go.
//
// The state is constructed once at application start and injected into
// whatever needs it; there are no package-level globals. All mutations are
// serialized through one mutex, so concurrent callers are safe, and every
// mutating method has notified all observers by the time it returns.
package trip

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/keepgoing/tripmap/internal/domain"
	"github.com/keepgoing/tripmap/internal/planner"
)

// Selection is the transient UI scratch state: which day and which marker
// are currently being edited. It is not itinerary data and is excluded from
// snapshots.
type Selection struct {
	Day      int `json:"day"`
	MarkerID int `json:"markerId"`
}

// MarkerInput carries the caller-supplied fields of a new marker.
// The state assigns the ID.
type MarkerInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Time        string        `json:"time"`
	LatLng      domain.LatLng `json:"latlng"`
	Day         int           `json:"day"`
}

// Snapshot is a deep copy of the persistent trip fields, used for archiving
// and restoring whole trips. Mutating the live state after taking a snapshot
// never alters the snapshot, and vice versa.
type Snapshot struct {
	Name        string
	Description string
	Budget      float64
	StartDate   time.Time
	EndDate     time.Time
	Markers     []domain.Marker
	Routes      []domain.Route
}

// State is the live trip. Create one with NewState.
type State struct {
	mu  sync.Mutex
	log *slog.Logger

	name         string
	description  string
	budget       float64
	startDate    time.Time
	endDate      time.Time
	markers      []domain.Marker
	routes       []domain.Route
	selection    Selection
	autoOptimize bool

	// nextMarkerID only ever grows; deleted marker IDs are never reused.
	nextMarkerID int

	observers []*Subscription
	nextSubID int
}

// NewState returns an empty trip state. Route auto-optimization defaults to
// on, matching the advisory flag's default; no optimizer runs in the engine.
func NewState(log *slog.Logger) *State {
	if log == nil {
		log = slog.Default()
	}
	return &State{
		log:          log,
		autoOptimize: true,
		nextMarkerID: 1,
	}
}

// --- field accessors --------------------------------------------------------

// Name returns the trip name.
func (s *State) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Description returns the trip description.
func (s *State) Description() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.description
}

// Budget returns the trip budget.
func (s *State) Budget() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget
}

// Dates returns the start and end dates. Either may be the zero time when
// not yet set.
func (s *State) Dates() (start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startDate, s.endDate
}

// AutoOptimize returns the advisory route-optimization flag.
func (s *State) AutoOptimize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoOptimize
}

// CurrentSelection returns the transient day/marker selection.
func (s *State) CurrentSelection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// --- field setters ----------------------------------------------------------
//
// Each setter is its own atomic step with its own notification; there is no
// transactional grouping of multiple field changes.

// SetName sets the trip name.
func (s *State) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	s.Notify()
}

// SetDescription sets the trip description.
func (s *State) SetDescription(description string) {
	s.mu.Lock()
	s.description = description
	s.mu.Unlock()
	s.Notify()
}

// SetBudget sets the trip budget.
func (s *State) SetBudget(budget float64) {
	s.mu.Lock()
	s.budget = budget
	s.mu.Unlock()
	s.Notify()
}

// SetAutoOptimize sets the advisory route-optimization flag.
func (s *State) SetAutoOptimize(enabled bool) {
	s.mu.Lock()
	s.autoOptimize = enabled
	s.mu.Unlock()
	s.Notify()
}

// SetSelection records which day and marker the UI is editing.
func (s *State) SetSelection(sel Selection) {
	s.mu.Lock()
	s.selection = sel
	s.mu.Unlock()
	s.Notify()
}

// SetDates stores the date range verbatim and recomputes routes.
// Callers must validate the range with planner.IsValidRange first; the state
// trusts pre-validated input and does not re-check. Shrinking the range
// after markers exist leaves their day ordinals in place — derived views
// (Days, Routes, MarkersForDay via the day list) simply stop covering them.
func (s *State) SetDates(start, end time.Time) {
	s.mu.Lock()
	s.startDate = start
	s.endDate = end
	s.recomputeRoutesLocked()
	s.mu.Unlock()
	s.Notify()
}

// --- marker store -----------------------------------------------------------

// AddMarker assigns the next unique ID, appends the marker, and returns it.
func (s *State) AddMarker(in MarkerInput) domain.Marker {
	s.mu.Lock()
	m := domain.Marker{
		ID:          s.nextMarkerID,
		Name:        in.Name,
		Description: in.Description,
		Time:        in.Time,
		LatLng:      in.LatLng,
		Day:         in.Day,
	}
	s.nextMarkerID++
	s.markers = append(s.markers, m)
	s.recomputeRoutesLocked()
	s.mu.Unlock()
	s.Notify()
	return m
}

// DeleteMarker removes the marker with the given ID. Deleting an absent ID
// is a no-op, not an error; observers are notified either way.
func (s *State) DeleteMarker(id int) {
	s.mu.Lock()
	for i, m := range s.markers {
		if m.ID == id {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			break
		}
	}
	s.recomputeRoutesLocked()
	s.mu.Unlock()
	s.Notify()
}

// Markers returns a copy of all markers in insertion order.
func (s *State) Markers() []domain.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Marker{}, s.markers...)
}

// MarkersForDay returns the markers assigned to the given day ordinal, in
// insertion order. Days with no markers yield an empty slice.
func (s *State) MarkersForDay(day int) []domain.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Marker{}
	for _, m := range s.markers {
		if m.Day == day {
			out = append(out, m)
		}
	}
	return out
}

// Routes returns a deep copy of the derived per-day polylines.
func (s *State) Routes() []domain.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Route{}, domain.CloneRoutes(s.routes)...)
}

// recomputeRoutesLocked rebuilds the per-day polylines from the current
// markers and date range. A day contributes a route only when it has at
// least two markers to connect. Caller must hold s.mu.
func (s *State) recomputeRoutesLocked() {
	s.routes = nil
	for _, day := range planner.GenerateDays(s.startDate, s.endDate) {
		var points []domain.LatLng
		for _, m := range s.markers {
			if m.Day == day.Day {
				points = append(points, m.LatLng)
			}
		}
		if len(points) > 1 {
			s.routes = append(s.routes, domain.Route{Day: day.Day, Points: points})
		}
	}
}

// --- derived views ----------------------------------------------------------

// Days returns the day descriptors for the current date range, computed
// fresh on every call. Empty when the range is unset.
func (s *State) Days() []planner.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return planner.GenerateDays(s.startDate, s.endDate)
}

// Stats summarizes the live trip. Averages are pre-formatted strings because
// they are display values: one decimal for markers per day, two for budget
// per day, "0.0"/"0.00" when the trip has no days yet.
type Stats struct {
	Days         int       `json:"days"`
	MarkerCount  int       `json:"markerCount"`
	AvgPerDay    string    `json:"avgPerDay"`
	Budget       float64   `json:"budget"`
	BudgetPerDay string    `json:"budgetPerDay"`
	TotalRecords int       `json:"totalRecords"`
	LastRecordAt time.Time `json:"lastRecordAt,omitzero"`
}

// ArchiveSummary is the slice of archive information that feeds Stats.
// The archive supplies it; the trip state never reaches into the archive.
type ArchiveSummary struct {
	TotalRecords int
	LastRecordAt time.Time
}

// Stats computes the trip statistics, folding in the archive summary.
func (s *State) Stats(archive ArchiveSummary) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := len(planner.GenerateDays(s.startDate, s.endDate))
	st := Stats{
		Days:         days,
		MarkerCount:  len(s.markers),
		AvgPerDay:    "0.0",
		Budget:       s.budget,
		BudgetPerDay: "0.00",
		TotalRecords: archive.TotalRecords,
		LastRecordAt: archive.LastRecordAt,
	}
	if days > 0 {
		st.AvgPerDay = strconv.FormatFloat(float64(len(s.markers))/float64(days), 'f', 1, 64)
		st.BudgetPerDay = strconv.FormatFloat(s.budget/float64(days), 'f', 2, 64)
	}
	return st
}

// --- lifecycle --------------------------------------------------------------

// Reset clears every live-trip field, including the transient selection,
// back to defaults and notifies once. It never touches the record archive.
func (s *State) Reset() {
	s.mu.Lock()
	s.name = ""
	s.description = ""
	s.budget = 0
	s.startDate = time.Time{}
	s.endDate = time.Time{}
	s.markers = nil
	s.routes = nil
	s.selection = Selection{}
	s.mu.Unlock()
	s.Notify()
}

// Snapshot returns a deep copy of the persistent trip fields.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Name:        s.name,
		Description: s.description,
		Budget:      s.budget,
		StartDate:   s.startDate,
		EndDate:     s.endDate,
		Markers:     domain.CloneMarkers(s.markers),
		Routes:      domain.CloneRoutes(s.routes),
	}
}

// Restore replaces the persistent trip fields with deep copies of the
// snapshot's and notifies once. The marker ID counter advances past the
// restored markers so future IDs stay unique.
func (s *State) Restore(snap Snapshot) {
	s.mu.Lock()
	s.name = snap.Name
	s.description = snap.Description
	s.budget = snap.Budget
	s.startDate = snap.StartDate
	s.endDate = snap.EndDate
	s.markers = domain.CloneMarkers(snap.Markers)
	s.routes = domain.CloneRoutes(snap.Routes)
	for _, m := range s.markers {
		if m.ID >= s.nextMarkerID {
			s.nextMarkerID = m.ID + 1
		}
	}
	s.mu.Unlock()
	s.Notify()
}
