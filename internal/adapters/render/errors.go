package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnknownFormat = errors.New("unknown report format")
	ErrWriteFailed   = errors.New("failed to write report")
	ErrChartFailed   = errors.New("failed to render chart page")
)
