package cli

import (
	"errors"
)

// Sentinel kinds for command errors. Callers match them with errors.Is.
var (
	// ErrSessionsFailed marks a multi-file run where at least one session
	// could not be loaded or analyzed. Healthy sessions still render.
	ErrSessionsFailed = errors.New("some sessions failed")

	// ErrCreateOutput marks a failure creating the requested output file.
	ErrCreateOutput = errors.New("create output file failed")

	// ErrWriteOutput marks a failure writing to the resolved destination.
	ErrWriteOutput = errors.New("write output failed")

	// ErrVerifyFailed marks a population verify run whose two generations
	// did not match.
	ErrVerifyFailed = errors.New("population verify failed")
)
