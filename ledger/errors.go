/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place. The engine errors only on genuinely
  invalid inputs; a record that fails to resolve to a property or has a
  missing optional date is silently excluded from sums, never an error.

SEE ALSO:
  - daterange.go: The fail-closed filtering those non-errors rely on
  - statement: Wraps these errors with report context
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidReportInput is returned for unparsable or contradictory
	// report parameters (bad as-of date, inverted range, zero tax year).
	ErrInvalidReportInput = errors.New("invalid report input")

	// ErrOwnerNotFound is returned by loaders when the owner has no
	// ledger at all (as opposed to an empty one).
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrSnapshotRequired is returned when a generator is called with a
	// nil snapshot.
	ErrSnapshotRequired = errors.New("snapshot required")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidReportInputError reports which input was rejected and why.
type InvalidReportInputError struct {
	Field  string // e.g. "asOfDate", "startDate", "taxYear"
	Value  string
	Reason string
}

func (e *InvalidReportInputError) Error() string {
	return fmt.Sprintf("invalid report input %s=%q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidReportInputError) Unwrap() error { return ErrInvalidReportInput }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidReportInput)
}

// IsNotFound returns true if the error indicates a missing owner ledger.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOwnerNotFound)
}
