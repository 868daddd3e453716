package session

import "errors"

// Sentinel kinds for game state errors.
var (
	ErrGameOver        = errors.New("game already over")
	ErrDuplicateGuess  = errors.New("employee already guessed")
	ErrUnknownEmployee = errors.New("unknown employee")
)
