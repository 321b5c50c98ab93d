// Package handler implements the HTTP surface of the itinerary engine.
// It is the UI adapter: handlers translate requests into trip state and
// archive calls and re-read derived views for responses. No business rules
// live here — validation beyond request parsing happens in domain helpers,
// and every mutation's observer fan-out is the engine's job.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keepgoing/tripmap/internal/archive"
	"github.com/keepgoing/tripmap/internal/trip"
)

// Server holds the handler dependencies. Unlike a database-backed service,
// the engine is cheap to construct, so handlers (and their tests) use the
// real state and archive rather than interface mocks.
type Server struct {
	state   *trip.State
	archive *archive.Archive
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(state *trip.State, arch *archive.Archive, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{state: state, archive: arch, log: log}
}

// Routes returns the router with every endpoint mounted. Middleware is
// applied by the caller (cmd/api) so tests exercise bare handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/state", func(r chi.Router) {
			r.Get("/", s.GetState)
			r.Put("/details", s.PutDetails)
			r.Put("/dates", s.PutDates)
			r.Post("/reset", s.PostReset)
			r.Get("/days", s.GetDays)
			r.Get("/days/{day}/markers", s.GetDayMarkers)
			r.Get("/stats", s.GetStats)
			r.Post("/markers", s.PostMarker)
			r.Delete("/markers/{id}", s.DeleteMarker)
		})
		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.ListRecords)
			r.Post("/", s.CreateRecord)
			r.Get("/{id}", s.GetRecord)
			r.Patch("/{id}", s.PatchRecord)
			r.Delete("/{id}", s.DeleteRecord)
			r.Post("/{id}/restore", s.RestoreRecord)
		})
		r.Get("/events", s.Events)
	})

	return r
}

// writeJSON marshals v with the given status. Encoding failures at this
// point can only be programming errors; they are logged, not surfaced.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response failed", "error", err)
	}
}
