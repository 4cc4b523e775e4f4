package ingest

import "errors"

// Sentinel kinds for ingestion errors. Bad cells inside a readable file are
// never errors; these cover the file itself.
var (
	ErrUnsupportedFormat = errors.New("unsupported session file format")
	ErrMalformedFile     = errors.New("malformed session file")
	ErrNoKnownColumns    = errors.New("no recognized columns in header")
)
