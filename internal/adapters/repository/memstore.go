package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kollega-game/kollega/pkg/metrics"
)

// record stores the best score and when it was first achieved.
type record struct {
	score       int
	submittedAt time.Time
}

// MemoryStore is an in-process Store. The min-merge runs under a single
// mutex so concurrent SubmitBest calls for the same key serialize instead
// of racing; reads take the shared lock and sort on demand, which is cheap
// at leaderboard page sizes.
type MemoryStore struct {
	mu   sync.RWMutex
	days map[string]map[string]record // day -> player -> best
}

// NewMemoryStore constructs an empty in-memory leaderboard store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{days: make(map[string]map[string]record)}
}

// SubmitBest implements the atomic min-merge.
func (s *MemoryStore) SubmitBest(ctx context.Context, day, player string, score int, now time.Time) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreMergeLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	players, ok := s.days[day]
	if !ok {
		players = make(map[string]record)
		s.days[day] = players
	}

	stored, exists := players[player]
	switch {
	case !exists:
		stored = record{score: score, submittedAt: now}
	case score < stored.score:
		// Strictly better: the new submission's timestamp marks when the
		// best score was first achieved.
		stored = record{score: score, submittedAt: now}
	default:
		// Equal or worse keeps the stored row untouched, which also makes
		// identical resubmissions idempotent.
	}
	players[player] = stored

	return Entry{Name: player, Day: day, Score: stored.score, SubmittedAt: stored.submittedAt}, nil
}

// Top implements the ranked read: score asc, then submission time asc.
func (s *MemoryStore) Top(ctx context.Context, day string, limit int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	players := s.days[day]
	out := make([]Entry, 0, len(players))
	for name, rec := range players {
		out = append(out, Entry{Name: name, Day: day, Score: rec.score, SubmittedAt: rec.submittedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].Name < out[j].Name // stable order for exact ts ties
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// Ping always succeeds for the in-process store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close releases nothing but satisfies Store.
func (s *MemoryStore) Close() error {
	return nil
}
