package handler

import (
	"net/http"
	"strings"

	"github.com/keepgoing/tripmap/internal/domain"
)

// ErrorDetail is the machine-readable part of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body: {"error":{"code","message"}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// notFound writes a 404 with the given human-readable message.
func (s *Server) notFound(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}})
}

// unprocessable writes a 422 for a validation failure, stripping the
// sentinel prefix so the client sees only the human-readable part.
func (s *Server) unprocessable(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
		Code:    "validation_error",
		Message: unwrapMessage(err),
	}})
}

// badRequest writes a 422 for a request rejected before reaching the engine
// (missing or malformed body).
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
		Code:    "validation_error",
		Message: message,
	}})
}

// unwrapMessage extracts the human-readable part from a wrapped validation
// error, e.g. "validation error: latitude must be between -90 and 90"
// → "latitude must be between -90 and 90".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
