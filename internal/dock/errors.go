package dock

import "errors"

var (
	// ErrInvalidConfiguration marks bad problem or algorithm parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvariantViolation marks an ordering that is not a permutation of the job set.
	ErrInvariantViolation = errors.New("invariant violation")
)
