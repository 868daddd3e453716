// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import "errors"

// Sentinel kinds for service-level failures.
var (
	ErrInvalidSubmission = errors.New("invalid leaderboard submission")
	ErrWriteDenied       = errors.New("leaderboard write not allowed")
	ErrInvalidDate       = errors.New("invalid date; must be YYYY-MM-DD")
	ErrNotStarted        = errors.New("service not started")
)
