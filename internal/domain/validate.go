package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ValidateCoordinates checks that a coordinate pair lies on the globe.
// NaN and infinite values are rejected before the range checks.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("%w: coordinates cannot be NaN", ErrValidation)
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: coordinates cannot be infinite", ErrValidation)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	}
	return nil
}

// ValidateRequired checks that every field in the map has a non-blank value.
// All missing fields are reported in one error ("name is required, startDate
// is required"), sorted by field name so the message is deterministic.
// Returns nil when everything is present.
func ValidateRequired(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name+" is required")
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
}
