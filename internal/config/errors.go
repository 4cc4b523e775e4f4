package config

import (
	"errors"
)

// Sentinel kinds for config errors. Callers match them with errors.Is.
var (
	// ErrInvalidConfig marks a config that loaded fine but failed validation,
	// such as an unknown log level or a non-positive histogram bin count.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks a failure reading or decoding a config source.
	ErrLoadConfig = errors.New("load config failed")
)
