package tracker

import "errors"

// Sentinel errors for the ledger core. Callers test them with errors.Is;
// every error returned by a Book mutation wraps exactly one of them.
var (
	// ErrValidation reports a malformed trade rejected before any mutation.
	ErrValidation = errors.New("invalid transaction")
	// ErrNotFound reports an Update or Delete referencing an unknown id.
	ErrNotFound = errors.New("transaction not found")
	// ErrInconsistency reports a mutation that would leave a position with
	// a negative quantity.
	ErrInconsistency = errors.New("inconsistent position")
	// ErrStorage reports a persistence failure during the atomic commit of
	// a mutation. No partial effect is applied.
	ErrStorage = errors.New("storage failure")
)
