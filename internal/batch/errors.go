package batch

import "errors"

// Sentinel kinds for batch errors.
var ErrJobCancelled = errors.New("job cancelled before it ran")
