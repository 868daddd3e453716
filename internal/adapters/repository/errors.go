package repository

import "errors"

// Sentinel kinds for leaderboard store errors.
var (
	ErrInvalidLimit  = errors.New("invalid leaderboard limit")
	ErrUnavailable   = errors.New("leaderboard store unavailable")
	ErrUnknownEngine = errors.New("unknown store engine")
)
