package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eugenenazirov/summit-pack/internal/session"
)

const (
	// DefaultMaxSessions caps how many sessions a MemoryStorage holds at once.
	DefaultMaxSessions = 10_000
	// DefaultIdleTTL is how long a session may go untouched before it is evicted.
	DefaultIdleTTL = 30 * time.Minute
)

var (
	// ErrSessionNotFound indicates no session is stored under the given id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists indicates a session with the same id is already stored.
	ErrSessionExists = errors.New("session already exists")
	// ErrStorageFull indicates the session limit has been reached.
	ErrStorageFull = errors.New("too many active sessions")
)

// Storage keeps active game sessions.
type Storage interface {
	Add(s *session.Session) error
	// With runs fn with exclusive access to the session.
	With(id string, fn func(*session.Session) error) error
	Delete(id string) error
	Len() int
}

type entry struct {
	mu      sync.Mutex
	session *session.Session
	// lastAccess holds UnixNano of the latest Add or With.
	lastAccess atomic.Int64
}

// MemoryStorage keeps sessions in-memory. The index is guarded by a RWMutex
// and every session by its own mutex, so operations on different sessions
// do not block each other. Sessions idle for longer than the TTL are swept
// when new sessions are added.
type MemoryStorage struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	maxSessions int
	idleTTL     time.Duration
	lastSweep   time.Time
	now         func() time.Time
	onEvict     func(id string)
}

// Option customises a MemoryStorage.
type Option func(*MemoryStorage)

// WithMaxSessions overrides DefaultMaxSessions.
func WithMaxSessions(n int) Option {
	return func(s *MemoryStorage) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithIdleTTL overrides DefaultIdleTTL. Zero disables idle eviction.
func WithIdleTTL(d time.Duration) Option {
	return func(s *MemoryStorage) {
		if d >= 0 {
			s.idleTTL = d
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStorage) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEvictHook registers fn to run after a session leaves the store, either
// through Delete or idle eviction. It is called without locks held.
func WithEvictHook(fn func(id string)) Option {
	return func(s *MemoryStorage) {
		s.onEvict = fn
	}
}

// NewMemoryStorage initialises an empty session store.
func NewMemoryStorage(opts ...Option) *MemoryStorage {
	s := &MemoryStorage{
		sessions:    make(map[string]*entry),
		maxSessions: DefaultMaxSessions,
		idleTTL:     DefaultIdleTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

// Add stores a new session, first evicting idle sessions when a sweep is
// due or the store is full.
func (s *MemoryStorage) Add(sess *session.Session) error {
	now := s.now()

	s.mu.Lock()
	var evicted []string
	if s.idleTTL > 0 && (len(s.sessions) >= s.maxSessions || now.Sub(s.lastSweep) >= s.idleTTL) {
		evicted = s.sweepLocked(now)
	}
	err := s.addLocked(sess, now)
	s.mu.Unlock()

	s.notify(evicted...)
	return err
}

func (s *MemoryStorage) addLocked(sess *session.Session, now time.Time) error {
	if _, ok := s.sessions[sess.ID]; ok {
		return ErrSessionExists
	}
	if len(s.sessions) >= s.maxSessions {
		return ErrStorageFull
	}
	e := &entry{session: sess}
	e.lastAccess.Store(now.UnixNano())
	s.sessions[sess.ID] = e
	return nil
}

// sweepLocked drops every session idle for at least the TTL and returns
// their ids. The caller holds the write lock.
func (s *MemoryStorage) sweepLocked(now time.Time) []string {
	s.lastSweep = now
	cutoff := now.Add(-s.idleTTL).UnixNano()

	var evicted []string
	for id, e := range s.sessions {
		if e.lastAccess.Load() <= cutoff {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// With looks up a session and runs fn while holding the session's lock.
func (s *MemoryStorage) With(id string, fn func(*session.Session) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastAccess.Store(s.now().UnixNano())
	return fn(e.session)
}

// Delete removes a session.
func (s *MemoryStorage) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	s.notify(id)
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *MemoryStorage) notify(ids ...string) {
	if s.onEvict == nil {
		return
	}
	for _, id := range ids {
		s.onEvict(id)
	}
}
