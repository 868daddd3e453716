package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrUnauthorized  = errors.New("directory rejected the access token")
	ErrFetch         = errors.New("directory fetch failed")
	ErrUnknownSource = errors.New("unknown catalog source")
)
