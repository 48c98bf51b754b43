package rope

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is the sentinel matched by every *RangeError.
var ErrOutOfRange = errors.New("out of range")

// Unit names the metric a RangeError was measured in.
type Unit string

// Units used by RangeError.
const (
	UnitChars Unit = "chars"
	UnitBytes Unit = "bytes"
	UnitLines Unit = "lines"
)

// RangeError reports bounds that exceed the extent of the slice they were
// applied to, or a byte bound that splits a UTF-8 sequence.
type RangeError struct {
	// Op is the slice operation that failed.
	Op string
	// Lower and Upper are the requested bounds. For single-position
	// operations Lower == Upper.
	Lower, Upper int
	// Extent is the length of the slice in Unit.
	Extent int
	// Unit is the metric of Lower, Upper and Extent.
	Unit Unit
	// Boundary is set when the bounds were in range but not on a char boundary.
	Boundary bool
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Boundary {
		return fmt.Sprintf("%s [%d, %d) is not on a char boundary", e.Op, e.Lower, e.Upper)
	}
	if e.Lower == e.Upper {
		return fmt.Sprintf("%s %d out of bounds (%d %s)", e.Op, e.Lower, e.Extent, e.Unit)
	}
	return fmt.Sprintf("%s [%d, %d) out of bounds (%d %s)", e.Op, e.Lower, e.Upper, e.Extent, e.Unit)
}

// Unwrap returns ErrOutOfRange so callers can use errors.Is.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
