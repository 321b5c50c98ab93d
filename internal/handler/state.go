package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keepgoing/tripmap/internal/domain"
	"github.com/keepgoing/tripmap/internal/planner"
	"github.com/keepgoing/tripmap/internal/trip"
)

// stateView is the full read model of the live trip.
type stateView struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Budget       float64         `json:"budget"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	AutoOptimize bool            `json:"autoOptimizeRoute"`
	Selection    trip.Selection  `json:"selection"`
	Markers      []domain.Marker `json:"markers"`
	Routes       []domain.Route  `json:"routes"`
}

// GetState handles GET /api/state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	start, end := s.state.Dates()
	s.writeJSON(w, http.StatusOK, stateView{
		Name:         s.state.Name(),
		Description:  s.state.Description(),
		Budget:       s.state.Budget(),
		StartDate:    domain.FormatDate(start),
		EndDate:      domain.FormatDate(end),
		AutoOptimize: s.state.AutoOptimize(),
		Selection:    s.state.CurrentSelection(),
		Markers:      s.state.Markers(),
		Routes:       s.state.Routes(),
	})
}

// detailsRequest carries optional field updates; absent fields are left
// untouched. Each present field is applied through its own setter, so each
// is its own atomic step with its own notification.
type detailsRequest struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Budget       *float64        `json:"budget"`
	AutoOptimize *bool           `json:"autoOptimizeRoute"`
	Selection    *trip.Selection `json:"selection"`
}

// PutDetails handles PUT /api/state/details.
func (s *Server) PutDetails(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if req.Budget != nil && *req.Budget < 0 {
		s.badRequest(w, "budget must not be negative")
		return
	}

	if req.Name != nil {
		s.state.SetName(*req.Name)
	}
	if req.Description != nil {
		s.state.SetDescription(*req.Description)
	}
	if req.Budget != nil {
		s.state.SetBudget(*req.Budget)
	}
	if req.AutoOptimize != nil {
		s.state.SetAutoOptimize(*req.AutoOptimize)
	}
	if req.Selection != nil {
		s.state.SetSelection(*req.Selection)
	}
	w.WriteHeader(http.StatusNoContent)
}

type datesRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// PutDates handles PUT /api/state/dates. This is the one place range
// validation happens: the engine's SetDates trusts pre-validated input.
func (s *Server) PutDates(w http.ResponseWriter, r *http.Request) {
	var req datesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if err := domain.ValidateRequired(map[string]string{
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
	}); err != nil {
		s.unprocessable(w, err)
		return
	}

	start, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		s.badRequest(w, "startDate must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		s.badRequest(w, "endDate must be a YYYY-MM-DD date")
		return
	}
	if !planner.IsValidRange(start, end) {
		s.unprocessable(w, domain.ErrInvalidRange)
		return
	}

	s.state.SetDates(start, end)
	s.writeJSON(w, http.StatusOK, s.state.Days())
}

// PostReset handles POST /api/state/reset: a full trip reset. The record
// archive is untouched.
func (s *Server) PostReset(w http.ResponseWriter, r *http.Request) {
	s.state.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// GetDays handles GET /api/state/days.
func (s *Server) GetDays(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Days())
}

// GetDayMarkers handles GET /api/state/days/{day}/markers.
func (s *Server) GetDayMarkers(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		s.badRequest(w, "day must be an integer")
		return
	}
	s.writeJSON(w, http.StatusOK, s.state.MarkersForDay(day))
}

// GetStats handles GET /api/state/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Stats(s.archive.Summary()))
}

// PostMarker handles POST /api/state/markers.
func (s *Server) PostMarker(w http.ResponseWriter, r *http.Request) {
	var req trip.MarkerInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	if err := domain.ValidateRequired(map[string]string{"name": req.Name}); err != nil {
		s.unprocessable(w, err)
		return
	}
	if err := domain.ValidateCoordinates(req.LatLng.Lat, req.LatLng.Lng); err != nil {
		s.unprocessable(w, err)
		return
	}
	if req.Day < 1 {
		s.unprocessable(w, fmt.Errorf("%w: day must be at least 1", domain.ErrValidation))
		return
	}

	marker := s.state.AddMarker(req)
	s.writeJSON(w, http.StatusCreated, marker)
}

// DeleteMarker handles DELETE /api/state/markers/{id}. Deleting an unknown
// marker is a no-op, so this always succeeds.
func (s *Server) DeleteMarker(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, "id must be an integer")
		return
	}
	s.state.DeleteMarker(id)
	w.WriteHeader(http.StatusNoContent)
}
