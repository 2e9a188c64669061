// Package browse keeps one catalog controller per visitor so that filters,
// the loaded window and in-flight requests survive between HTTP calls.
package browse

import (
	"context"
	"sync"
	"time"

	"edenstone/internal/decor"
	"edenstone/internal/logger"
	"edenstone/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxSweepInterval = time.Minute

// Factory builds the controller for a new session.
type Factory func() *decor.Controller

type session struct {
	ctrl     *decor.Controller
	lastSeen time.Time
}

type Store struct {
	newController Factory
	ttl           time.Duration
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewStore(factory Factory, ttl time.Duration) *Store {
	return &Store{
		newController: factory,
		ttl:           ttl,
		now:           time.Now,
		sessions:      make(map[string]*session),
	}
}

// Get returns the controller of a live session and marks it as seen.
func (s *Store) Get(id string) (*decor.Controller, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Create starts a new session with a fresh controller.
func (s *Store) Create() (string, *decor.Controller) {
	id := uuid.NewString()
	ctrl := s.newController()

	s.mu.Lock()
	s.sessions[id] = &session{ctrl: ctrl, lastSeen: s.now()}
	s.mu.Unlock()

	metrics.SessionsCreated.Inc()
	return id, ctrl
}

// Resolve returns the session for id, or a new one when id is unknown or
// expired. created reports whether the returned id differs from the input.
func (s *Store) Resolve(id string) (sid string, ctrl *decor.Controller, created bool) {
	if ctrl, ok := s.Get(id); ok {
		return id, ctrl, false
	}
	sid, ctrl = s.Create()
	return sid, ctrl, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.SessionsExpired.Add(uint64(removed))
	return removed
}

// Run sweeps expired sessions until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.sweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.L().Debug("expired browse sessions removed",
					zap.Int("removed", n),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}

func (s *Store) sweepInterval() time.Duration {
	iv := s.ttl / 2
	if iv <= 0 || iv > maxSweepInterval {
		return maxSweepInterval
	}
	return iv
}
