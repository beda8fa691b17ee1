package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/lib"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	session  *Session
	lastUsed time.Time
}

// Registry holds the sessions opened through the remote API, keyed by uuid.
// Clients are expected to Close their sessions; Reap drops the ones that were
// abandoned.
type Registry struct {
	mu       *sync.Mutex
	logger   *slog.Logger
	seed     func() []graph.Element
	now      func() time.Time
	sessions map[string]*entry
}

// NewRegistry creates a Registry whose sessions start from seed().
func NewRegistry(seed func() []graph.Element, logger *slog.Logger) *Registry {
	return &Registry{
		mu:       &sync.Mutex{},
		logger:   lib.OrNop(logger),
		seed:     seed,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

func (r *Registry) Open() (string, *Session) {
	id := uuid.NewString()
	s := New(r.seed(), r.logger.With("session", id))

	r.mu.Lock()
	r.sessions[id] = &entry{session: s, lastUsed: r.now()}
	r.mu.Unlock()

	r.logger.Info("Opened session", "session", id)
	return id, s
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastUsed = r.now()
	return e.session, nil
}

func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.logger.Info("Closed session", "session", id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ExpireIdle closes every session not used for longer than maxIdle and returns
// how many were closed.
func (r *Registry) ExpireIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	expired := 0
	for id, e := range r.sessions {
		if idle := now.Sub(e.lastUsed); idle > maxIdle {
			delete(r.sessions, id)
			expired++
			r.logger.Info("Expired idle session", "session", id, "idle", idle)
		}
	}
	return expired
}

// Reap runs ExpireIdle at half of maxIdle until ctx is done. A maxIdle of zero
// or less returns immediately.
func (r *Registry) Reap(ctx context.Context, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(maxIdle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ExpireIdle(maxIdle)
		}
	}
}
