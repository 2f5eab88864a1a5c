/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculation functions themselves never fail: empty input yields empty
  output, invalid intervals propagate as values, unknown workflows read as
  "not applied". Errors only appear at the edges, when records are built,
  stored or decoded.

ERROR CATEGORIES:
  1. Input errors - Malformed intervals or rounding modes from callers
  2. Record errors - A stored record could not be converted
  3. Store errors - Lookups that found nothing

USAGE:
  if errors.Is(err, generic.ErrRecordNotFound) {
      // respond 404
  }

SEE ALSO:
  - attendance/entity.go: Returns ErrDuplicateDayRecord
  - store/sqlite/sqlite.go: Wraps record conversion failures in RecordError
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when a caller supplies start >= end or a
	// negative start where a real interval is required.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrUnknownRoundingMode is returned by ParseRoundingMode.
	ErrUnknownRoundingMode = errors.New("unknown rounding mode")

	// ErrRecordNotFound is returned when a referenced record doesn't exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateDayRecord is returned when a day holds two records of a
	// kind that allows at most one per day (work on holiday, difference,
	// work type change, attendance).
	ErrDuplicateDayRecord = errors.New("duplicate single-instance record for day")

	// ErrUnknownRequestKind is returned when a stored request kind has no
	// matching variant.
	ErrUnknownRequestKind = errors.New("unknown request kind")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RecordError reports a record that could not be converted, e.g. a stored
// clock time that does not parse. It is fatal to that record only.
type RecordError struct {
	Kind     string
	RecordID string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %s: %v", e.Kind, e.RecordID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IntervalError carries the rejected bounds.
type IntervalError struct {
	Start int
	End   int
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("invalid interval [%d,%d)", e.Start, e.End)
}

func (e *IntervalError) Unwrap() error {
	return ErrInvalidInterval
}

// ParseInterval is NewInterval for caller-supplied bounds: it reports an
// error instead of returning the invalid interval.
func ParseInterval(start, end int) (Interval, error) {
	d := NewInterval(start, end)
	if !d.IsValid() {
		return d, &IntervalError{Start: start, End: end}
	}
	return d, nil
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrUnknownRoundingMode) ||
		errors.Is(err, ErrDuplicateDayRecord) ||
		errors.Is(err, ErrUnknownRequestKind)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
