/*
errors.go - Centralized error types for the analytics domain

PURPOSE:
  All error types of the preparation and metrics core in one place.
  Outer layers (API, CLI) match on the sentinels with errors.Is and on
  the structured types with errors.As.

ERROR CATEGORIES:
  1. Schema errors - a raw table lacks a required column
  2. Join integrity errors - a foreign key has no match
  3. Parse errors - a timestamp cannot be interpreted
  4. Argument errors - a value violates a precondition (negative price,
     negative delivery duration)

NOT ERRORS:
  A growth ratio over a zero baseline and an empty-period mean are
  documented policy results (tabular.Ratio with Baseline=false,
  tabular.Maybe undefined), never errors. See metrics.go.

All errors are raised synchronously at the point of detection and none
are retried: these are pure computations over already-loaded data, so a
retry has no corrective effect.

SEE ALSO:
  - preparer.go, metrics.go: Raise these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package commerce

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrSchema is returned when a raw table lacks a required column.
	ErrSchema = errors.New("missing required columns")

	// ErrJoinIntegrity is returned when foreign keys have no match in the
	// referenced table. Orphans are counted and sampled, never silently
	// dropped.
	ErrJoinIntegrity = errors.New("unmatched foreign keys")

	// ErrTimestampParse is returned when a timestamp value cannot be
	// parsed as an ISO-8601-compatible timestamp.
	ErrTimestampParse = errors.New("unparseable timestamp")

	// ErrInvalidArgument is returned when a value violates a precondition.
	ErrInvalidArgument = errors.New("invalid argument")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// SchemaError names the table and the columns it lacks.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q is missing required columns: %s",
		e.Table, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// JoinIntegrityError reports how many keys of a join column found no
// match, with a bounded sample of the orphan keys.
type JoinIntegrityError struct {
	Table  string // table whose keys dangle
	Column string // the join column
	Count  int    // total orphan keys
	Sample []string
}

func (e *JoinIntegrityError) Error() string {
	return fmt.Sprintf("%d %s.%s value(s) have no match (sample: %s)",
		e.Count, e.Table, e.Column, strings.Join(e.Sample, ", "))
}

func (e *JoinIntegrityError) Unwrap() error { return ErrJoinIntegrity }

// TimestampParseError names the offending order and the raw value.
type TimestampParseError struct {
	Column  string
	OrderID string
	Value   string
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("order %s: cannot parse %s value %q",
		e.OrderID, e.Column, e.Value)
}

func (e *TimestampParseError) Unwrap() error { return ErrTimestampParse }

// InvalidArgumentError reports a precondition violation on a field value.
type InvalidArgumentError struct {
	Field  string
	Reason string
	ID     string // owning record, when one exists
	Value  any
}

func (e *InvalidArgumentError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (%v) for %s", e.Field, e.Reason, e.Value, e.ID)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Field, e.Reason, e.Value)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsDataFault returns true if the error indicates malformed or
// inconsistent input data rather than an internal failure.
func IsDataFault(err error) bool {
	return errors.Is(err, ErrSchema) ||
		errors.Is(err, ErrJoinIntegrity) ||
		errors.Is(err, ErrTimestampParse) ||
		errors.Is(err, ErrInvalidArgument)
}
