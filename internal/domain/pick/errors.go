package pick

import "errors"

// Sentinel kinds for selection errors.
var (
	ErrNoEmployees = errors.New("no employees available")
)
