package wheel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange indicates a bad min/max pair or a displayed-value table
	// that does not cover the range.
	ErrInvalidRange = errors.New("wheel: invalid value range")

	// ErrInvalidItemCount indicates a wheel with fewer than one visible item.
	ErrInvalidItemCount = errors.New("wheel: wheel item count must be at least 1")
)

// InvalidRangeError carries the offending configuration. Displayed is the
// length of the displayed-value table, or -1 when none is set.
type InvalidRangeError struct {
	Min       int
	Max       int
	Displayed int
}

func (e *InvalidRangeError) Error() string {
	if e.Displayed >= 0 {
		return fmt.Sprintf("%s: %d displayed values for range [%d, %d] (need %d)",
			ErrInvalidRange, e.Displayed, e.Min, e.Max, e.Max-e.Min+1)
	}
	return fmt.Sprintf("%s: [%d, %d]", ErrInvalidRange, e.Min, e.Max)
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}
