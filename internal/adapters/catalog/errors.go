package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrBadCatalog = errors.New("invalid coaching catalog")
)
