package errors

import (
	"math"
)

// ValidatePositive checks that a configured dimension is a finite number
// strictly greater than zero.
//
// field is the dotted configuration key (e.g. "wall.width") and appears
// verbatim in the error message so users can find the offending entry.
func ValidatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", field, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative checks that a configured dimension is finite and not
// below zero. Mortar joints may be zero for dry-stacked walls.
func ValidateNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", field, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", field, v)
	}
	return nil
}
