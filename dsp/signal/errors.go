package signal

import "errors"

// Errors returned by signal construction and queries.
var (
	// ErrInvalidParameter reports a non-physical parameter such as a
	// non-positive sample rate or a zero-length correlation input.
	ErrInvalidParameter = errors.New("signal: invalid parameter")

	// ErrEmptySignal reports an operation that needs at least one sample.
	ErrEmptySignal = errors.New("signal: empty signal")
)
