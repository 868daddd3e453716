// Package repository defines the leaderboard store interface and errors.
package repository

import (
	"context"
	"time"
)

// Entry represents a leaderboard row for one (player, day) pair.
type Entry struct {
	Rank        int
	Name        string
	Day         string
	Score       int
	SubmittedAt time.Time
}

// Store provides read/write access to per-day leaderboard state.
//
// SubmitBest is the reconciliation point of the whole system: it must merge
// concurrent submissions for the same (player, day) atomically, never as a
// read-then-write pair, so two racing writers cannot both observe a stale
// score and lose an update.
type Store interface {
	// SubmitBest records score for (day, player), keeping the lowest score
	// ever submitted for the pair. A strictly better score adopts now as
	// its timestamp; ties and worse submissions keep the stored timestamp.
	// Returns the row as stored after the merge.
	SubmitBest(ctx context.Context, day, player string, score int, now time.Time) (Entry, error)

	// Top returns up to limit entries for day ordered by score asc, then
	// submission time asc, with ranks assigned 1..N.
	Top(ctx context.Context, day string, limit int) ([]Entry, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}
