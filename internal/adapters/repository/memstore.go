package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/mindease/internal/domain/session"
	"github.com/okian/mindease/pkg/metrics"
)

const (
	defaultMetricsUpdateInterval = 5 * time.Second
	defaultIdleTTL               = 30 * time.Minute
)

// MemoryStore is a map-backed Store guarded by a single mutex. Reduce is
// pure and cheap, so holding the lock across it keeps Dispatch atomic.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]session.State

	maxSessions           int
	idleTTL               time.Duration
	metricsUpdateInterval time.Duration
	now                   func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a store and starts its background loop, which
// refreshes the session gauge and evicts idle sessions until ctx is done or
// Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:              make(map[string]session.State),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		idleTTL:               defaultIdleTTL,
		now:                   time.Now,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateActiveSessions(0)
	s.startMetricsUpdater(ctx)
	return s
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, id string) (session.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok {
		return session.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return st, nil
}

// GetOrCreate implements Store.GetOrCreate.
func (s *MemoryStore) GetOrCreate(_ context.Context, id string) (session.State, bool, error) {
	if strings.TrimSpace(id) == "" {
		return session.State{}, false, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[id]; ok {
		return st, false, nil
	}
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictIdleLocked(s.now())
	}
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		metrics.RecordErrorByComponent("repository", "session_limit")
		return session.State{}, false, fmt.Errorf("%w: %d sessions", ErrSessionLimit, s.maxSessions)
	}
	st := session.New(id, s.now().UTC())
	s.sessions[id] = st
	metrics.UpdateActiveSessions(len(s.sessions))
	return st, true, nil
}

// Dispatch implements Store.Dispatch.
func (s *MemoryStore) Dispatch(_ context.Context, id string, a session.Action) (session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return session.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next, err := session.Reduce(st, a)
	if err != nil {
		return st, fmt.Errorf("session %s: %w", id, err)
	}
	s.sessions[id] = next
	return next, nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions with no pending reply whose last activity is
// at least the idle TTL before now. It returns the number removed.
func (s *MemoryStore) EvictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked(now)
}

func (s *MemoryStore) evictIdleLocked(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}
	removed := 0
	for id, st := range s.sessions {
		// A typing session still has a reply in flight.
		if st.Typing || now.Sub(st.UpdatedAt) < s.idleTTL {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	if removed > 0 {
		metrics.UpdateActiveSessions(len(s.sessions))
	}
	return removed
}

// Close stops the background goroutine.
func (s *MemoryStore) Close() error {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.EvictIdle(s.now())
				metrics.UpdateActiveSessions(s.Count(ctx))
			}
		}
	}()
}
