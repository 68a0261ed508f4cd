package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateField is returned when one input names the same unit twice.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrFieldOverflow is returned when a field does not fit its storage.
	ErrFieldOverflow = errors.New("field value out of range")

	// ErrUnknownZone is returned for a time zone name that cannot be resolved.
	ErrUnknownZone = errors.New("time zone not recognized")
)

// RangeError reports a calendar or clock field outside its domain.
type RangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// TooSmall reports whether the value fell below the minimum.
func (e *RangeError) TooSmall() bool {
	return e.Value < e.Min
}

func checkRange(field string, v, min, max int64) error {
	if v < min || v > max {
		return &RangeError{Field: field, Value: v, Min: min, Max: max}
	}
	return nil
}
