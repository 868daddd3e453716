package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/kollega-game/kollega/pkg/metrics"
)

// schema holds the single durable table. The primary key makes the
// ON CONFLICT merge in submitQuery well-defined.
const schema = `
CREATE TABLE IF NOT EXISTS leaderboard (
	player_name  TEXT      NOT NULL,
	day          TEXT      NOT NULL,
	score        INTEGER   NOT NULL,
	submitted_at TIMESTAMP NOT NULL,
	PRIMARY KEY (player_name, day)
);`

// submitQuery is the whole reconciliation algorithm in one statement: the
// database resolves concurrent submissions for the same key, so there is no
// window for a lost update between a read and a write. A strictly better
// score adopts the new timestamp; otherwise both columns keep their values.
const submitQuery = `
INSERT INTO leaderboard (player_name, day, score, submitted_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (player_name, day) DO UPDATE SET
	submitted_at = CASE
		WHEN excluded.score < leaderboard.score THEN excluded.submitted_at
		ELSE leaderboard.submitted_at
	END,
	score = MIN(leaderboard.score, excluded.score)
RETURNING player_name, day, score, submitted_at`

const topQuery = `
SELECT player_name, day, score, submitted_at
FROM leaderboard
WHERE day = ?
ORDER BY score ASC, submitted_at ASC, player_name ASC
LIMIT ?`

// row maps the leaderboard table.
type row struct {
	PlayerName  string    `db:"player_name"`
	Day         string    `db:"day"`
	Score       int       `db:"score"`
	SubmittedAt time.Time `db:"submitted_at"`
}

// SQLStore is the durable Store backed by sqlite.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore opens (and if needed creates) the database at dsn and ensures
// the schema exists. The busy timeout lets concurrent writers queue on the
// sqlite write lock instead of failing immediately.
func NewSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open leaderboard db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure leaderboard schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// SubmitBest implements the atomic min-merge via the conditional upsert.
func (s *SQLStore) SubmitBest(ctx context.Context, day, player string, score int, now time.Time) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreMergeLatency(float64(time.Since(start).Milliseconds()))
	}()

	var r row
	if err := s.db.QueryRowxContext(ctx, submitQuery, player, day, score, now.UTC()).StructScan(&r); err != nil {
		metrics.RecordErrorByComponent("repository", "submit")
		return Entry{}, fmt.Errorf("submit score: %w", err)
	}
	return Entry{Name: r.PlayerName, Day: r.Day, Score: r.Score, SubmittedAt: r.SubmittedAt}, nil
}

// Top implements the ranked read.
func (s *SQLStore) Top(ctx context.Context, day string, limit int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	var rows []row
	if err := s.db.SelectContext(ctx, &rows, topQuery, day, limit); err != nil {
		metrics.RecordErrorByComponent("repository", "query")
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = Entry{Rank: i + 1, Name: r.PlayerName, Day: r.Day, Score: r.Score, SubmittedAt: r.SubmittedAt}
	}
	return out, nil
}

// Ping probes database connectivity for the health check.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
