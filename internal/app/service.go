package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kollega-game/kollega/internal/adapters/catalog"
	"github.com/kollega-game/kollega/internal/adapters/repository"
	"github.com/kollega-game/kollega/internal/domain/model"
	"github.com/kollega-game/kollega/internal/domain/pick"
	"github.com/kollega-game/kollega/internal/domain/session"
	"github.com/kollega-game/kollega/internal/domain/types"
	"github.com/kollega-game/kollega/pkg/logger"
	"github.com/kollega-game/kollega/pkg/metrics"
)

// Service implements the API dependencies for the guessing game and its
// leaderboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    catalog.Provider
	store      repository.Store
	sessions   *session.Manager
	authorizer Authorizer

	// Configuration
	maxGuesses       int
	leaderboardLimit int
	dailySalt        string
	sessionTTL       time.Duration
	clock            func() time.Time

	// Per-day catalog cache: snapshots are immutable, so one fetch serves
	// every player for the rest of the day.
	dayMu     sync.RWMutex
	dayKey    string
	daySnap   catalog.Snapshot
	dayTarget model.Employee

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the roster provider.
func WithCatalog(p catalog.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.catalog = p
		}
	}
}

// WithStore sets the leaderboard store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithAuthorizer sets the leaderboard write gate.
func WithAuthorizer(a Authorizer) Option {
	return func(s *Service) {
		if a != nil {
			s.authorizer = a
		}
	}
}

// WithMaxGuesses sets the attempt cap per game.
func WithMaxGuesses(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxGuesses = n
		}
	}
}

// WithLeaderboardLimit caps entries per leaderboard page.
func WithLeaderboardLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardLimit = n
		}
	}
}

// WithDailySalt seeds target selection.
func WithDailySalt(salt string) Option {
	return func(s *Service) {
		if salt != "" {
			s.dailySalt = salt
		}
	}
}

// WithSessionTTL sets how long idle sessions survive.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock injects the time source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxGuesses:       session.DefaultMaxGuesses,
		leaderboardLimit: 100,
		dailySalt:        "kollega",
		sessionTTL:       48 * time.Hour,
		clock:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components that were not injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.catalog == nil {
		s.catalog = catalog.NewMockProvider()
		s.logger.Info(ctx, "using mock employee catalog")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory leaderboard store")
	}
	if s.authorizer == nil {
		s.authorizer = OpenGate{}
	}
	s.sessions = session.NewManager(ctx,
		session.WithMaxGuesses(s.maxGuesses),
		session.WithTTL(s.sessionTTL),
	)

	s.started = true
	s.logger.Info(ctx, "game service started",
		logger.Int("maxGuesses", s.maxGuesses),
		logger.Int("leaderboardLimit", s.leaderboardLimit),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.sessions != nil {
		_ = s.sessions.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "game service stopped")
}

// NewSessionID mints an identifier for a new player session cookie.
func (s *Service) NewSessionID() string {
	return session.NewID()
}

// today resolves the puzzle for the current server-local day, fetching and
// caching the catalog snapshot on first use per day.
func (s *Service) today(ctx context.Context) (string, catalog.Snapshot, model.Employee, error) {
	key := pick.DateKey(s.clock())

	s.dayMu.RLock()
	if s.dayKey == key {
		snap, target := s.daySnap, s.dayTarget
		s.dayMu.RUnlock()
		return key, snap, target, nil
	}
	s.dayMu.RUnlock()

	s.dayMu.Lock()
	defer s.dayMu.Unlock()
	if s.dayKey == key { // refreshed while waiting for the lock
		return key, s.daySnap, s.dayTarget, nil
	}

	start := time.Now()
	roster, err := s.catalog.ListEmployees(ctx, s.clock())
	if err != nil {
		metrics.RecordErrorByComponent("catalog", "fetch")
		return "", catalog.Snapshot{}, model.Employee{}, fmt.Errorf("load catalog: %w", err)
	}
	metrics.RecordCatalogRefresh(float64(time.Since(start).Milliseconds()))

	snap := catalog.NewSnapshot(roster)
	target, err := pick.Target(snap.Employees(), s.clock(), s.dailySalt)
	if err != nil {
		return "", catalog.Snapshot{}, model.Employee{}, err
	}

	s.dayKey, s.daySnap, s.dayTarget = key, snap, target
	metrics.UpdateCatalogSize(snap.Size())
	s.logger.Info(ctx, "catalog refreshed",
		logger.String("day", key),
		logger.Int("employees", snap.Size()),
	)
	return key, snap, target, nil
}

// Game returns the current session state for sessionID, creating a fresh
// game when none exists for today.
func (s *Service) Game(ctx context.Context, sessionID string) (types.GameView, error) {
	day, _, target, err := s.today(ctx)
	if err != nil {
		return types.GameView{}, err
	}
	sess := s.sessions.GetOrCreate(sessionID, day, target)
	metrics.UpdateActiveSessions(s.sessions.Count())
	return s.view(day, sess), nil
}

// Guess applies one guess to the session and returns the updated state.
// Sentinel errors from the session layer pass through untouched so the
// HTTP boundary can map them.
func (s *Service) Guess(ctx context.Context, sessionID, employeeID string) (types.GameView, error) {
	day, snap, target, err := s.today(ctx)
	if err != nil {
		return types.GameView{}, err
	}
	sess := s.sessions.GetOrCreate(sessionID, day, target)

	result, err := sess.MakeGuess(snap, employeeID)
	if err != nil {
		return types.GameView{}, err
	}

	metrics.RecordGuess(result.IsCorrect)
	switch sess.Status() {
	case session.StatusWon:
		metrics.RecordGameWon()
	case session.StatusLost:
		metrics.RecordGameLost()
	}
	return s.view(day, sess), nil
}

// view assembles the player-facing state, revealing the target only once
// the game is over.
func (s *Service) view(day string, sess *session.Session) types.GameView {
	guesses := sess.Guesses()
	v := types.GameView{
		Date:        day,
		Status:      string(sess.Status()),
		Guesses:     guesses,
		MaxGuesses:  sess.MaxGuesses(),
		GuessesLeft: sess.MaxGuesses() - len(guesses),
	}
	if score, ok := sess.Score(); ok {
		v.Score = score
	}
	if target, ok := sess.Target(); ok {
		v.Target = &types.EmployeeView{ID: target.ID, Name: target.Name, AvatarURL: target.AvatarURL}
	}
	return v
}

// Employees lists today's roster for the guess picker.
func (s *Service) Employees(ctx context.Context) ([]types.EmployeeView, error) {
	_, snap, _, err := s.today(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.EmployeeView, 0, snap.Size())
	for _, e := range snap.Employees() {
		out = append(out, types.EmployeeView{ID: e.ID, Name: e.Name, AvatarURL: e.AvatarURL})
	}
	return out, nil
}

// SubmitScore validates and merges a leaderboard submission for today.
// Validation and the write gate both run before any store interaction.
func (s *Service) SubmitScore(ctx context.Context, name string, score int, credential string) (types.SubmitResult, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return types.SubmitResult{}, fmt.Errorf("%w: name must be non-empty", ErrInvalidSubmission)
	}
	if score < 1 {
		return types.SubmitResult{}, fmt.Errorf("%w: score must be a positive integer", ErrInvalidSubmission)
	}
	if !s.authorizer.MayWrite(ctx, credential) {
		return types.SubmitResult{}, ErrWriteDenied
	}

	now := s.clock()
	entry, err := s.store.SubmitBest(ctx, pick.DateKey(now), trimmed, score, now)
	if err != nil {
		return types.SubmitResult{}, err
	}
	metrics.RecordSubmission(entry.Score == score && entry.SubmittedAt.Equal(now))
	return types.SubmitResult{Name: entry.Name, Score: entry.Score, Day: entry.Day, SubmittedAt: entry.SubmittedAt}, nil
}

// Leaderboard returns the ranked page for day (YYYY-MM-DD), defaulting to
// today when day is empty.
func (s *Service) Leaderboard(ctx context.Context, day string) (types.Page, error) {
	if day == "" {
		day = pick.DateKey(s.clock())
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return types.Page{}, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}

	entries, err := s.store.Top(ctx, day, s.leaderboardLimit)
	if err != nil {
		return types.Page{}, err
	}
	page := types.Page{Date: day, Leaderboard: make([]types.Entry, len(entries))}
	for i, e := range entries {
		page.Leaderboard[i] = types.Entry{Rank: e.Rank, Name: e.Name, Score: e.Score, SubmittedAt: e.SubmittedAt}
	}
	return page, nil
}

// StorageHealthy probes the leaderboard store for the health endpoint.
func (s *Service) StorageHealthy(ctx context.Context) error {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return ErrNotStarted
	}
	return store.Ping(ctx)
}

// Today reports the current puzzle day key.
func (s *Service) Today() string {
	return pick.DateKey(s.clock())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"maxGuesses":       s.maxGuesses,
		"leaderboardLimit": s.leaderboardLimit,
		"day":              pick.DateKey(s.clock()),
	}
	if s.started && s.sessions != nil {
		stats["activeSessions"] = s.sessions.Count()
		metrics.UpdateActiveSessions(s.sessions.Count())
	}

	s.dayMu.RLock()
	if s.dayKey != "" {
		stats["catalogEmployees"] = s.daySnap.Size()
	}
	s.dayMu.RUnlock()

	return stats
}
