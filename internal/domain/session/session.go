// Package session implements the per-player game state machine: an ordered,
// append-only guess list that moves from in-progress to won or lost.
package session

import (
	"sync"

	"github.com/kollega-game/kollega/internal/domain/evaluate"
	"github.com/kollega-game/kollega/internal/domain/model"
)

// Status is the lifecycle phase of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// DefaultMaxGuesses is the attempt cap before a game is lost.
const DefaultMaxGuesses = 6

// Roster resolves a guessed employee ID against the day's catalog.
type Roster interface {
	Employee(id string) (model.Employee, bool)
}

// Session tracks one player's game for one day. The target is never exposed
// until the game reaches a terminal state.
type Session struct {
	mu         sync.Mutex
	target     model.Employee
	maxGuesses int
	guesses    []model.Guess
	status     Status
}

// New starts a fresh in-progress session for the given target.
func New(target model.Employee, maxGuesses int) *Session {
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	return &Session{
		target:     target,
		maxGuesses: maxGuesses,
		status:     StatusInProgress,
	}
}

// MakeGuess resolves id via roster, evaluates it against the target and
// appends the result. Terminal sessions and duplicate or unknown IDs are
// rejected without touching the guess list.
func (s *Session) MakeGuess(roster Roster, id string) (model.Guess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusInProgress {
		return model.Guess{}, ErrGameOver
	}
	for _, g := range s.guesses {
		if g.EmployeeID == id {
			return model.Guess{}, ErrDuplicateGuess
		}
	}
	guessed, ok := roster.Employee(id)
	if !ok {
		return model.Guess{}, ErrUnknownEmployee
	}

	result := evaluate.Evaluate(s.target, guessed)
	s.guesses = append(s.guesses, result)

	switch {
	case result.IsCorrect:
		s.status = StatusWon
	case len(s.guesses) >= s.maxGuesses:
		s.status = StatusLost
	}
	return result, nil
}

// Status reports the current lifecycle phase.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Guesses returns a copy of the guess list in submission order.
func (s *Session) Guesses() []model.Guess {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Guess, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// MaxGuesses reports the attempt cap for this session.
func (s *Session) MaxGuesses() int {
	return s.maxGuesses
}

// Score returns the number of guesses taken and true for a won game. Lost
// and in-progress games produce no submittable score.
func (s *Session) Score() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusWon {
		return 0, false
	}
	return len(s.guesses), true
}

// Target reveals the hidden employee once the game is over. Before that it
// returns false so the answer cannot leak to the presentation layer.
func (s *Session) Target() (model.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInProgress {
		return model.Employee{}, false
	}
	return s.target, true
}
