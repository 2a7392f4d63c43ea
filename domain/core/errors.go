package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Invalid-input errors: fail fast, never proceed with garbage output
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyCatalog     = fmt.Errorf("%w: empty catalog", ErrInvalidInput)
	ErrEmptyGrid        = fmt.Errorf("%w: empty grid", ErrInvalidInput)
	ErrNonPositiveSigma = fmt.Errorf("%w: non-positive sigma", ErrInvalidInput)
	ErrZeroRateWeights  = fmt.Errorf("%w: no galaxy below rate cutoff", ErrInvalidInput)
	ErrNoEvents         = fmt.Errorf("%w: empty event set", ErrInvalidInput)

	// Numeric errors: a normalization or selection integral came out
	// NaN/Inf/zero where a finite positive value is required
	ErrNumericDegenerate = errors.New("numerically degenerate result")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: validation failed for %s: %s", ErrInvalidInput, field, reason)
}

func NewDegenerateError(quantity string, value float64) error {
	return fmt.Errorf("%w: %s evaluated to %v", ErrNumericDegenerate, quantity, value)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsNumericDegenerate(err error) bool {
	return errors.Is(err, ErrNumericDegenerate)
}
