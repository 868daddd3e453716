package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kollega-game/kollega/internal/domain/model"
)

// Default manager configuration constants.
const (
	defaultTTL           = 48 * time.Hour
	defaultSweepInterval = 15 * time.Minute
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithTTL sets how long an untouched session survives before the sweeper
// drops it.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often expired sessions are collected.
func WithSweepInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.sweepInterval = interval
		}
	}
}

// WithMaxGuesses sets the attempt cap applied to new sessions.
func WithMaxGuesses(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxGuesses = n
		}
	}
}

type entry struct {
	session  *Session
	dateKey  string
	lastSeen time.Time
}

// Manager keeps live sessions keyed by session ID. A session is bound to
// the calendar day it was created for; asking for a different day starts a
// fresh game, which is how state "persists across reloads for the same day"
// without surviving into the next one.
type Manager struct {
	mu            sync.RWMutex
	sessions      map[string]*entry
	ttl           time.Duration
	sweepInterval time.Duration
	maxGuesses    int

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewManager constructs a session manager and starts its sweep goroutine.
func NewManager(ctx context.Context, opts ...Option) *Manager {
	m := &Manager{
		sessions:      make(map[string]*entry),
		ttl:           defaultTTL,
		sweepInterval: defaultSweepInterval,
		maxGuesses:    DefaultMaxGuesses,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.stopChan = make(chan struct{})
	m.startSweeper(ctx)
	return m
}

// NewID mints a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// GetOrCreate returns the session stored under id for dateKey, creating one
// with the given target when none exists or the stored one is for another
// day.
func (m *Manager) GetOrCreate(id, dateKey string, target model.Employee) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok && e.dateKey == dateKey {
		e.lastSeen = time.Now()
		return e.session
	}
	s := New(target, m.maxGuesses)
	m.sessions[id] = &entry{session: s, dateKey: dateKey, lastSeen: time.Now()}
	return s
}

// Get returns the session stored under id for dateKey, if any.
func (m *Manager) Get(id, dateKey string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok || e.dateKey != dateKey {
		return nil, false
	}
	return e.session, true
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) startSweeper(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stopChan:
				return
			case <-ticker.C:
				m.sweep(time.Now())
			}
		}
	}()
}

// sweep drops sessions untouched for longer than the TTL.
func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.sessions {
		if now.Sub(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

// Close stops the sweep goroutine.
func (m *Manager) Close() error {
	select {
	case <-m.stopChan:
		// already closed
	default:
		close(m.stopChan)
	}
	m.wg.Wait()
	return nil
}
