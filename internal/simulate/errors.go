package simulate

import "errors"

// Sentinel kinds for simulator errors.
var (
	ErrUnknownProfile = errors.New("unknown thrower profile")
	ErrWriteFailed    = errors.New("failed to write sample session")
)
