package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested resource does not exist —
// an archived record looked up by ID, or an empty geocoding result.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (missing required field, coordinates out of range, end date before start).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is the specific validation failure for a date range whose
// end precedes its start. It wraps ErrValidation, so errors.Is(err,
// ErrValidation) holds for it as well.
var ErrInvalidRange = fmt.Errorf("%w: end date precedes start date", ErrValidation)

// ErrUnavailable is returned by the remote adapters (trip backend, geocoder)
// when the service cannot be reached at the transport level.
var ErrUnavailable = errors.New("service unavailable")
