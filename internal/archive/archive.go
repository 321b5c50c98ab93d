// Package archive implements the durable, searchable collection of saved
// trip records. Records are snapshots of the live trip state: deep copies
// taken at save time, never live references.
//
// The archive persists the whole collection through a Store on every
// mutation. Persistence failures are logged and swallowed — the in-memory
// collection stays authoritative for the running session even when durable
// storage is broken. Every mutation fires the trip state's notification bus.
package archive

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/keepgoing/tripmap/internal/domain"
	"github.com/keepgoing/tripmap/internal/planner"
	"github.com/keepgoing/tripmap/internal/trip"
)

// Store is the persistence contract the archive consumes: a durable store
// that round-trips the whole record collection losslessly. Implementations
// live in internal/store.
type Store interface {
	SaveTripRecords(ctx context.Context, records []domain.TripRecord) error
	LoadTripRecords(ctx context.Context) ([]domain.TripRecord, error)
}

// RecordInput carries optional overrides for Add. Empty fields fall back to
// values derived from the live trip state.
type RecordInput struct {
	Name        string
	Destination string
	Description string
	Budget      float64
	StartDate   time.Time
	EndDate     time.Time
	Duration    int
	ImageURL    string
}

// RecordPatch carries the partial fields for Update. Nil pointers leave the
// existing value untouched.
type RecordPatch struct {
	Name        *string    `json:"name,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	Description *string    `json:"description,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
}

// Archive is the collection of saved trip records, newest first.
type Archive struct {
	mu      sync.Mutex
	log     *slog.Logger
	store   Store
	state   *trip.State
	records []domain.TripRecord

	// now is swappable so tests can pin record timestamps.
	now func() time.Time
}

// New constructs an Archive persisting through store and signalling
// mutations on state's notification bus. Call LoadAll before first use.
func New(store Store, state *trip.State, log *slog.Logger) *Archive {
	if log == nil {
		log = slog.Default()
	}
	return &Archive{
		log:   log,
		store: store,
		state: state,
		now:   time.Now,
	}
}

// LoadAll reads the persisted collection, fully replacing the in-memory one.
// A read or parse failure resets the archive to empty; the failure is logged
// and swallowed so a corrupt store never takes the session down.
func (a *Archive) LoadAll(ctx context.Context) {
	a.mu.Lock()
	records, err := a.store.LoadTripRecords(ctx)
	if err != nil {
		a.log.Error("loading trip records failed, starting empty", "error", err)
		records = nil
	}
	a.records = records
	a.mu.Unlock()
	a.state.Notify()
}

// Records returns a deep copy of the whole archive, newest first.
func (a *Archive) Records() []domain.TripRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneAll(a.records)
}

// Add builds a record from the live trip state plus the input's overrides,
// inserts it at the head, persists, and notifies. The new record is returned.
func (a *Archive) Add(ctx context.Context, in RecordInput) domain.TripRecord {
	snap := a.state.Snapshot()

	rec := domain.TripRecord{
		Name:        in.Name,
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		Budget:      in.Budget,
		Duration:    in.Duration,
		Markers:     snap.Markers,
		Routes:      snap.Routes,
		ImageURL:    in.ImageURL,
	}
	if rec.Name == "" {
		rec.Name = "Untitled Trip"
	}
	if rec.Destination == "" {
		rec.Destination = destinationOf(snap)
	}
	if rec.StartDate.IsZero() {
		rec.StartDate = snap.StartDate
	}
	if rec.EndDate.IsZero() {
		rec.EndDate = snap.EndDate
	}
	if rec.Description == "" {
		rec.Description = snap.Description
	}
	if rec.Budget == 0 {
		rec.Budget = snap.Budget
	}
	if rec.Duration == 0 {
		rec.Duration = durationOf(snap)
	}

	created := a.now()
	rec.ID = domain.NewRecordID(created)
	rec.CreatedAt = created

	a.mu.Lock()
	a.records = append([]domain.TripRecord{rec}, a.records...)
	a.persistLocked(ctx)
	out := rec.Clone()
	a.mu.Unlock()
	a.state.Notify()
	return out
}

// SaveCurrent archives the live trip under the given name and description.
// An empty name falls back to the trip's own name, then to a dated default.
func (a *Archive) SaveCurrent(ctx context.Context, name, description string) domain.TripRecord {
	snap := a.state.Snapshot()
	if name == "" {
		name = snap.Name
	}
	if name == "" {
		name = "My Trip " + a.now().Format(domain.DateFormat)
	}
	if description == "" {
		description = snap.Description
	}
	return a.Add(ctx, RecordInput{
		Name:        name,
		Description: description,
		Destination: destinationOf(snap),
		Duration:    durationOf(snap),
	})
}

// Update shallow-merges the patch over the record with the given ID, stamps
// UpdatedAt, persists, notifies, and returns the updated record. Returns nil
// when no record has that ID.
func (a *Archive) Update(ctx context.Context, id string, patch RecordPatch) *domain.TripRecord {
	a.mu.Lock()
	idx := a.indexLocked(id)
	if idx < 0 {
		a.mu.Unlock()
		return nil
	}

	rec := &a.records[idx]
	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Destination != nil {
		rec.Destination = *patch.Destination
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Budget != nil {
		rec.Budget = *patch.Budget
	}
	if patch.StartDate != nil {
		rec.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		rec.EndDate = *patch.EndDate
	}
	if patch.Duration != nil {
		rec.Duration = *patch.Duration
	}
	if patch.ImageURL != nil {
		rec.ImageURL = *patch.ImageURL
	}
	updated := a.now()
	rec.UpdatedAt = &updated

	a.persistLocked(ctx)
	out := rec.Clone()
	a.mu.Unlock()
	a.state.Notify()
	return &out
}

// Remove deletes the record with the given ID, persists, and notifies.
// Removing an absent ID is a no-op, not an error.
func (a *Archive) Remove(ctx context.Context, id string) {
	a.mu.Lock()
	if idx := a.indexLocked(id); idx >= 0 {
		a.records = append(a.records[:idx], a.records[idx+1:]...)
	}
	a.persistLocked(ctx)
	a.mu.Unlock()
	a.state.Notify()
}

// FindByID returns a copy of the record with the given ID, or nil.
func (a *Archive) FindByID(id string) *domain.TripRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	if idx := a.indexLocked(id); idx >= 0 {
		out := a.records[idx].Clone()
		return &out
	}
	return nil
}

// Search returns the records whose name, destination, or description
// contains term, case-insensitively, preserving archive order. An empty
// term returns the whole archive unfiltered.
func (a *Archive) Search(term string) []domain.TripRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	if term == "" {
		return cloneAll(a.records)
	}
	needle := strings.ToLower(term)
	out := []domain.TripRecord{}
	for _, rec := range a.records {
		if strings.Contains(strings.ToLower(rec.Name), needle) ||
			strings.Contains(strings.ToLower(rec.Destination), needle) ||
			strings.Contains(strings.ToLower(rec.Description), needle) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// RestoreInto copies the record's trip fields into the live trip state
// (markers and routes by value, never shared) and reports whether the record
// existed. The state's Restore fires the notification.
func (a *Archive) RestoreInto(id string) bool {
	rec := a.FindByID(id)
	if rec == nil {
		return false
	}
	a.state.Restore(trip.Snapshot{
		Name:        rec.Name,
		Description: rec.Description,
		Budget:      rec.Budget,
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		Markers:     rec.Markers,
		Routes:      rec.Routes,
	})
	return true
}

// Summary reports the record count and the newest record's creation time,
// for the trip statistics view.
func (a *Archive) Summary() trip.ArchiveSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	sum := trip.ArchiveSummary{TotalRecords: len(a.records)}
	if len(a.records) > 0 {
		sum.LastRecordAt = a.records[0].CreatedAt
	}
	return sum
}

// persistLocked writes the whole collection through the store. Failures are
// logged and swallowed; no retry. Caller must hold a.mu.
func (a *Archive) persistLocked(ctx context.Context) {
	if err := a.store.SaveTripRecords(ctx, cloneAll(a.records)); err != nil {
		a.log.Error("saving trip records failed", "error", err, "records", len(a.records))
	}
}

// indexLocked returns the position of the record with the given ID, or -1.
func (a *Archive) indexLocked(id string) int {
	for i, rec := range a.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(records []domain.TripRecord) []domain.TripRecord {
	out := make([]domain.TripRecord, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}

// destinationOf derives a destination label from the first marker, mirroring
// how a saved trip is titled when the user never names a destination.
func destinationOf(snap trip.Snapshot) string {
	if len(snap.Markers) == 0 {
		return ""
	}
	return snap.Markers[0].Name
}

// durationOf is the inclusive day count of the snapshot's range, 0 when the
// range is unset or invalid.
func durationOf(snap trip.Snapshot) int {
	return len(planner.GenerateDays(snap.StartDate, snap.EndDate))
}
