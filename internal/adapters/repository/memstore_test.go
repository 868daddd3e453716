package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

const day = "2025-03-14"

func ts(sec int) time.Time {
	return time.Date(2025, 3, 14, 12, 0, sec, 0, time.UTC)
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Empty day reads as an empty page, not an error.
	entries, err := store.Top(ctx, day, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty leaderboard, got %d entries", len(entries))
	}

	entry, err := store.SubmitBest(ctx, day, "alice", 4, ts(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Score != 4 {
		t.Errorf("expected score 4, got %d", entry.Score)
	}
	if !entry.SubmittedAt.Equal(ts(0)) {
		t.Errorf("expected timestamp %v, got %v", ts(0), entry.SubmittedAt)
	}

	entries, err = store.Top(ctx, day, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 || entries[0].Name != "alice" {
		t.Errorf("unexpected leaderboard: %+v", entries)
	}
}

func TestMemoryStore_BestScoreSemantics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// 5, then a better 3, then a worse 4: stored row must end at 3 with
	// the timestamp of the submission that achieved it.
	if _, err := store.SubmitBest(ctx, day, "bob", 5, ts(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, err := store.SubmitBest(ctx, day, "bob", 3, ts(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Score != 3 || !entry.SubmittedAt.Equal(ts(1)) {
		t.Errorf("expected (3, %v), got (%d, %v)", ts(1), entry.Score, entry.SubmittedAt)
	}

	entry, err = store.SubmitBest(ctx, day, "bob", 4, ts(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Score != 3 || !entry.SubmittedAt.Equal(ts(1)) {
		t.Errorf("worse submission must not move score or timestamp, got (%d, %v)", entry.Score, entry.SubmittedAt)
	}
}

func TestMemoryStore_IdempotentResubmission(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first, _ := store.SubmitBest(ctx, day, "carol", 2, ts(0))
	second, _ := store.SubmitBest(ctx, day, "carol", 2, ts(5))

	if second.Score != first.Score || !second.SubmittedAt.Equal(first.SubmittedAt) {
		t.Errorf("identical resubmission changed the row: %+v vs %+v", first, second)
	}
}

func TestMemoryStore_TieKeepsEarlierTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, _ = store.SubmitBest(ctx, day, "dave", 3, ts(0))
	entry, _ := store.SubmitBest(ctx, day, "dave", 3, ts(9))

	if !entry.SubmittedAt.Equal(ts(0)) {
		t.Errorf("tie on score must keep the first achiever's timestamp, got %v", entry.SubmittedAt)
	}
}

func TestMemoryStore_ReadOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, _ = store.SubmitBest(ctx, day, "three", 3, ts(0))
	_, _ = store.SubmitBest(ctx, day, "one", 1, ts(1))
	_, _ = store.SubmitBest(ctx, day, "two", 2, ts(2))
	// Same score as "two" but later submission: ranks below it.
	_, _ = store.SubmitBest(ctx, day, "late-two", 2, ts(3))

	entries, err := store.Top(ctx, day, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"one", "two", "late-two", "three"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, name := range wantOrder {
		if entries[i].Name != name {
			t.Errorf("rank %d: expected %s, got %s", i+1, name, entries[i].Name)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("expected rank %d, got %d", i+1, entries[i].Rank)
		}
	}
}

func TestMemoryStore_LimitAndDayIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 0; i < 10; i++ {
		_, _ = store.SubmitBest(ctx, day, fmt.Sprintf("p%d", i), i+1, ts(i))
	}
	_, _ = store.SubmitBest(ctx, "2025-03-15", "other-day", 1, ts(0))

	entries, err := store.Top(ctx, day, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Name == "other-day" {
			t.Error("entry from another day leaked into the page")
		}
	}

	if _, err := store.Top(ctx, day, 0); err != ErrInvalidLimit {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestMemoryStore_ConcurrentSubmissions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Racing submissions for the same player must converge on the minimum
	// regardless of arrival order.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SubmitBest(ctx, day, "racer", score, ts(score)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(2 + i%2) // interleave 2s and 3s
	}
	wg.Wait()

	entries, err := store.Top(ctx, day, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 2 {
		t.Errorf("expected final score 2, got %+v", entries)
	}

	// Concurrent writers across distinct players must all land.
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.SubmitBest(ctx, day, fmt.Sprintf("player-%d", i), i+1, ts(i))
		}(i)
	}
	wg.Wait()

	entries, _ = store.Top(ctx, day, 100)
	if len(entries) != 51 {
		t.Errorf("expected 51 entries, got %d", len(entries))
	}
}
