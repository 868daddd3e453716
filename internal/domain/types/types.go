// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// Entry represents a leaderboard entry
type Entry struct {
	Rank        int       `json:"rank"`
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SubmitResult is the row returned after a score submission merge. Unlike
// Entry it carries the day and no rank: the merge does not know where the
// row lands in the ordering.
type SubmitResult struct {
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	Day         string    `json:"date"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Page is the leaderboard read shape for a single day.
type Page struct {
	Date        string  `json:"date"`
	Leaderboard []Entry `json:"leaderboard"`
}

// EmployeeView is the roster shape exposed to the guess picker. Hint
// attributes stay server-side so the client cannot mine them.
type EmployeeView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarImageUrl,omitempty"`
}

// GameView is the session state exposed to the player. Target is nil until
// the game reaches a terminal state.
type GameView struct {
	Date        string        `json:"date"`
	Status      string        `json:"status"`
	Guesses     []model.Guess `json:"guesses"`
	MaxGuesses  int           `json:"maxGuesses"`
	GuessesLeft int           `json:"guessesLeft"`
	Score       int           `json:"score,omitempty"`
	Target      *EmployeeView `json:"target,omitempty"`
}
