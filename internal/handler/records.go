package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keepgoing/tripmap/internal/archive"
	"github.com/keepgoing/tripmap/internal/domain"
)

// recordRequest is the create-record body. Every field is an override;
// absent fields fall back to values derived from the live trip state.
type recordRequest struct {
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Duration    int     `json:"duration"`
	ImageURL    string  `json:"imageUrl"`
}

// recordPatchRequest is the update body. Nil fields are left untouched.
type recordPatchRequest struct {
	Name        *string  `json:"name"`
	Destination *string  `json:"destination"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	Duration    *int     `json:"duration"`
	ImageURL    *string  `json:"imageUrl"`
}

// ListRecords handles GET /api/records. The optional ?q= parameter filters
// by case-insensitive substring over name, destination, and description;
// without it the whole archive is returned, newest first.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.archive.Search(r.URL.Query().Get("q")))
}

// CreateRecord handles POST /api/records: snapshot the live trip into a new
// archived record, applying any overrides from the body.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	in := archive.RecordInput{
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		Budget:      req.Budget,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
	}
	var ok bool
	if in.StartDate, ok = s.parseOptionalDate(w, "startDate", req.StartDate); !ok {
		return
	}
	if in.EndDate, ok = s.parseOptionalDate(w, "endDate", req.EndDate); !ok {
		return
	}

	s.writeJSON(w, http.StatusCreated, s.archive.Add(r.Context(), in))
}

// GetRecord handles GET /api/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec := s.archive.FindByID(chi.URLParam(r, "id"))
	if rec == nil {
		s.notFound(w, "trip record not found")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// PatchRecord handles PATCH /api/records/{id}: shallow-merge the provided
// fields over the stored record.
func (s *Server) PatchRecord(w http.ResponseWriter, r *http.Request) {
	var req recordPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}

	patch := archive.RecordPatch{
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		Budget:      req.Budget,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
	}
	if req.StartDate != nil {
		t, ok := s.parseOptionalDate(w, "startDate", *req.StartDate)
		if !ok {
			return
		}
		patch.StartDate = &t
	}
	if req.EndDate != nil {
		t, ok := s.parseOptionalDate(w, "endDate", *req.EndDate)
		if !ok {
			return
		}
		patch.EndDate = &t
	}

	rec := s.archive.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if rec == nil {
		s.notFound(w, "trip record not found")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord handles DELETE /api/records/{id}. Removing an absent record
// is a no-op, so this always succeeds.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	s.archive.Remove(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// RestoreRecord handles POST /api/records/{id}/restore: copy the record's
// trip fields into the live state.
func (s *Server) RestoreRecord(w http.ResponseWriter, r *http.Request) {
	if !s.archive.RestoreInto(chi.URLParam(r, "id")) {
		s.notFound(w, "trip record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseOptionalDate parses a YYYY-MM-DD field, treating "" as unset.
// On a malformed value it writes the error response and reports !ok.
func (s *Server) parseOptionalDate(w http.ResponseWriter, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		s.badRequest(w, field+" must be a YYYY-MM-DD date")
		return time.Time{}, false
	}
	return t, true
}
