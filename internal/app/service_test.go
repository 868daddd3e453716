package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kollega-game/kollega/internal/adapters/catalog"
	"github.com/kollega-game/kollega/internal/adapters/repository"
	"github.com/kollega-game/kollega/internal/domain/pick"
	"github.com/kollega-game/kollega/internal/domain/session"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// targetID resolves the employee the service will hide on the given day, so
// tests can guess right or wrong on purpose.
func targetID(t *testing.T, clock func() time.Time, salt string) string {
	t.Helper()
	roster, err := catalog.NewMockProvider().ListEmployees(context.Background(), clock())
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	target, err := pick.Target(roster, clock(), salt)
	if err != nil {
		t.Fatalf("pick target: %v", err)
	}
	return target.ID
}

// wrongID returns a roster member that is not the target.
func wrongID(t *testing.T, clock func() time.Time, salt string) string {
	t.Helper()
	hidden := targetID(t, clock, salt)
	roster, _ := catalog.NewMockProvider().ListEmployees(context.Background(), clock())
	for _, e := range roster {
		if e.ID != hidden {
			return e.ID
		}
	}
	t.Fatal("roster has a single employee")
	return ""
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	ctx := context.Background()
	svc := New(opts...)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceGame(t *testing.T) {
	clock := fixedClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	Convey("Given a started service", t, func() {
		svc := newTestService(t, WithClock(clock), WithDailySalt("test-salt"))
		ctx := context.Background()

		Convey("When a new session asks for its game", func() {
			id := svc.NewSessionID()
			view, err := svc.Game(ctx, id)

			Convey("Then a fresh in-progress game is created", func() {
				So(err, ShouldBeNil)
				So(view.Status, ShouldEqual, string(session.StatusInProgress))
				So(view.Date, ShouldEqual, "2026-03-14")
				So(view.Guesses, ShouldBeEmpty)
				So(view.GuessesLeft, ShouldEqual, view.MaxGuesses)
				So(view.Target, ShouldBeNil)
			})

			Convey("And asking again returns the same game", func() {
				_, err := svc.Guess(ctx, id, wrongID(t, clock, "test-salt"))
				So(err, ShouldBeNil)

				again, err := svc.Game(ctx, id)
				So(err, ShouldBeNil)
				So(again.Guesses, ShouldHaveLength, 1)
			})
		})
	})
}

func TestServiceGuess(t *testing.T) {
	clock := fixedClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	const salt = "test-salt"

	Convey("Given a started service and a session", t, func() {
		svc := newTestService(t, WithClock(clock), WithDailySalt(salt), WithMaxGuesses(3))
		ctx := context.Background()
		id := svc.NewSessionID()

		Convey("When the hidden employee is guessed", func() {
			view, err := svc.Guess(ctx, id, targetID(t, clock, salt))

			Convey("Then the game is won and the target revealed", func() {
				So(err, ShouldBeNil)
				So(view.Status, ShouldEqual, string(session.StatusWon))
				So(view.Score, ShouldEqual, 1)
				So(view.Target, ShouldNotBeNil)
				So(view.Target.ID, ShouldEqual, targetID(t, clock, salt))
			})

			Convey("And further guesses are rejected", func() {
				_, err := svc.Guess(ctx, id, wrongID(t, clock, salt))
				So(errors.Is(err, session.ErrGameOver), ShouldBeTrue)
			})
		})

		Convey("When the same wrong employee is guessed twice", func() {
			wrong := wrongID(t, clock, salt)
			_, err := svc.Guess(ctx, id, wrong)
			So(err, ShouldBeNil)
			_, err = svc.Guess(ctx, id, wrong)

			Convey("Then the duplicate is rejected", func() {
				So(errors.Is(err, session.ErrDuplicateGuess), ShouldBeTrue)
			})
		})

		Convey("When an unknown employee ID is guessed", func() {
			_, err := svc.Guess(ctx, id, "no-such-employee")

			Convey("Then the guess is rejected", func() {
				So(errors.Is(err, session.ErrUnknownEmployee), ShouldBeTrue)
			})
		})
	})
}

func TestServiceSubmitScore(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	clock := fixedClock(now)

	Convey("Given a started service with an open write gate", t, func() {
		svc := newTestService(t, WithClock(clock))
		ctx := context.Background()

		Convey("When a valid score is submitted", func() {
			entry, err := svc.SubmitScore(ctx, "alice", 3, "")

			Convey("Then the entry is stored for today", func() {
				So(err, ShouldBeNil)
				So(entry.Name, ShouldEqual, "alice")
				So(entry.Score, ShouldEqual, 3)
				So(entry.Day, ShouldEqual, "2026-03-14")
				So(entry.SubmittedAt.Equal(now), ShouldBeTrue)
			})

			Convey("And a worse resubmission keeps the better score", func() {
				merged, err := svc.SubmitScore(ctx, "alice", 5, "")
				So(err, ShouldBeNil)
				So(merged.Score, ShouldEqual, 3)
			})

			Convey("And a better resubmission replaces it", func() {
				merged, err := svc.SubmitScore(ctx, "alice", 1, "")
				So(err, ShouldBeNil)
				So(merged.Score, ShouldEqual, 1)
			})
		})

		Convey("When the name is blank", func() {
			_, err := svc.SubmitScore(ctx, "   ", 3, "")

			Convey("Then the submission is invalid", func() {
				So(errors.Is(err, ErrInvalidSubmission), ShouldBeTrue)
			})
		})

		Convey("When the score is not positive", func() {
			_, err := svc.SubmitScore(ctx, "alice", 0, "")

			Convey("Then the submission is invalid", func() {
				So(errors.Is(err, ErrInvalidSubmission), ShouldBeTrue)
			})
		})

		Convey("When the name carries surrounding whitespace", func() {
			entry, err := svc.SubmitScore(ctx, "  bob  ", 2, "")

			Convey("Then the stored name is trimmed", func() {
				So(err, ShouldBeNil)
				So(entry.Name, ShouldEqual, "bob")
			})
		})
	})

	Convey("Given a started service behind a token gate", t, func() {
		svc := newTestService(t, WithClock(clock), WithAuthorizer(TokenGate{Token: "secret"}))
		ctx := context.Background()

		Convey("When the credential is wrong", func() {
			_, err := svc.SubmitScore(ctx, "alice", 3, "nope")

			Convey("Then the write is denied before touching the store", func() {
				So(errors.Is(err, ErrWriteDenied), ShouldBeTrue)

				page, err := svc.Leaderboard(ctx, "")
				So(err, ShouldBeNil)
				So(page.Leaderboard, ShouldBeEmpty)
			})
		})

		Convey("When the credential matches", func() {
			_, err := svc.SubmitScore(ctx, "alice", 3, "secret")

			Convey("Then the write goes through", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestServiceLeaderboard(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	clock := fixedClock(now)

	Convey("Given a service with a few submissions", t, func() {
		svc := newTestService(t, WithClock(clock))
		ctx := context.Background()

		_, err := svc.SubmitScore(ctx, "carol", 4, "")
		So(err, ShouldBeNil)
		_, err = svc.SubmitScore(ctx, "alice", 2, "")
		So(err, ShouldBeNil)
		_, err = svc.SubmitScore(ctx, "bob", 2, "")
		So(err, ShouldBeNil)

		Convey("When the leaderboard for today is requested", func() {
			page, err := svc.Leaderboard(ctx, "")

			Convey("Then entries are ranked by score, then submission time", func() {
				So(err, ShouldBeNil)
				So(page.Date, ShouldEqual, "2026-03-14")
				So(page.Leaderboard, ShouldHaveLength, 3)
				So(page.Leaderboard[0].Name, ShouldEqual, "alice")
				So(page.Leaderboard[0].Rank, ShouldEqual, 1)
				So(page.Leaderboard[1].Name, ShouldEqual, "bob")
				So(page.Leaderboard[2].Name, ShouldEqual, "carol")
				So(page.Leaderboard[2].Rank, ShouldEqual, 3)
			})
		})

		Convey("When a past day with no entries is requested", func() {
			page, err := svc.Leaderboard(ctx, "2026-03-01")

			Convey("Then an empty page is returned", func() {
				So(err, ShouldBeNil)
				So(page.Date, ShouldEqual, "2026-03-01")
				So(page.Leaderboard, ShouldBeEmpty)
			})
		})

		Convey("When the day is malformed", func() {
			_, err := svc.Leaderboard(ctx, "14-03-2026")

			Convey("Then the request is rejected", func() {
				So(errors.Is(err, ErrInvalidDate), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service with a tight leaderboard limit", t, func() {
		svc := newTestService(t, WithClock(clock), WithLeaderboardLimit(2))
		ctx := context.Background()

		for _, name := range []string{"a", "b", "c"} {
			_, err := svc.SubmitScore(ctx, name, 3, "")
			So(err, ShouldBeNil)
		}

		Convey("Then only the top entries are returned", func() {
			page, err := svc.Leaderboard(ctx, "")
			So(err, ShouldBeNil)
			So(page.Leaderboard, ShouldHaveLength, 2)
		})
	})
}

func TestServiceEmployees(t *testing.T) {
	clock := fixedClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	Convey("Given a started service", t, func() {
		svc := newTestService(t, WithClock(clock))

		Convey("When today's roster is listed", func() {
			employees, err := svc.Employees(context.Background())

			Convey("Then the full mock roster comes back ID-sorted", func() {
				So(err, ShouldBeNil)
				So(len(employees), ShouldBeGreaterThan, 0)
				for i := 1; i < len(employees); i++ {
					So(employees[i-1].ID, ShouldBeLessThan, employees[i].ID)
				}
			})
		})
	})
}

func TestServiceDayRollover(t *testing.T) {
	Convey("Given a session with guesses made yesterday", t, func() {
		now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
		current := now
		svc := newTestService(t, WithClock(func() time.Time { return current }))
		ctx := context.Background()
		id := svc.NewSessionID()

		_, err := svc.Guess(ctx, id, wrongID(t, fixedClock(current), "kollega"))
		So(err, ShouldBeNil)

		Convey("When the calendar day advances", func() {
			current = now.Add(2 * time.Hour)
			view, err := svc.Game(ctx, id)

			Convey("Then the same session ID starts a fresh game", func() {
				So(err, ShouldBeNil)
				So(view.Date, ShouldEqual, "2026-03-15")
				So(view.Guesses, ShouldBeEmpty)
				So(view.Status, ShouldEqual, string(session.StatusInProgress))
			})
		})
	})
}

func TestServiceStorageHealthy(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newTestService(t)

		Convey("Then the storage probe succeeds", func() {
			So(svc.StorageHealthy(context.Background()), ShouldBeNil)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := New()

		Convey("Then the storage probe reports not started", func() {
			err := svc.StorageHealthy(context.Background())
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestServiceGetStats(t *testing.T) {
	clock := fixedClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))

	Convey("Given a started service with one live session", t, func() {
		svc := newTestService(t, WithClock(clock))
		ctx := context.Background()

		_, err := svc.Game(ctx, svc.NewSessionID())
		So(err, ShouldBeNil)

		Convey("When stats are collected", func() {
			stats := svc.GetStats()

			Convey("Then they describe the running service", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["day"], ShouldEqual, "2026-03-14")
				So(stats["activeSessions"], ShouldEqual, 1)
				So(stats["catalogEmployees"], ShouldNotBeNil)
			})
		})
	})
}

func TestServiceStoreErrors(t *testing.T) {
	Convey("Given a service backed by a closed sqlite store path", t, func() {
		// A memory store cannot fail; exercise the error path with a store
		// stub instead.
		svc := newTestService(t, WithStore(failingStore{}))

		Convey("When a submission reaches the store", func() {
			_, err := svc.SubmitScore(context.Background(), "alice", 3, "")

			Convey("Then the store error propagates", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

type failingStore struct{}

func (failingStore) SubmitBest(context.Context, string, string, int, time.Time) (repository.Entry, error) {
	return repository.Entry{}, repository.ErrUnavailable
}

func (failingStore) Top(context.Context, string, int) ([]repository.Entry, error) {
	return nil, repository.ErrUnavailable
}

func (failingStore) Ping(context.Context) error { return repository.ErrUnavailable }
func (failingStore) Close() error               { return nil }
