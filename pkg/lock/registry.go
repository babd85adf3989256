package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/Chinh13571113/careermate-web-sub001/internal/logging"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

// DefaultTTL bounds how long a distributed lock outlives a dead holder.
const DefaultTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Registry hands out per-session mutual exclusion. A second caller
// arriving while a session is locked fails fast with
// domain.ErrSubmissionInProgress instead of queueing. It uses Reference
// Counting to garbage collect unused entries.
type Registry struct {
	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker ports.SessionLocker // Optional distributed locker
	logger *slog.Logger
	ttl    time.Duration
}

// Option configures the Registry.
type Option func(*Registry)

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.SessionLocker) Option {
	return func(r *Registry) {
		r.locker = locker
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithTTL overrides the distributed lock TTL.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// NewRegistry creates a new lock registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST call release(sessionID) when done with the entry.
func (r *Registry) acquire(sessionID string) *lockEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		r.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (r *Registry) release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(r.locks, sessionID)
	}
}

// TryWithLock runs fn while holding the session's lock. If the session
// already has a mutating call in flight, locally or on another replica,
// it returns domain.ErrSubmissionInProgress without waiting.
func (r *Registry) TryWithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := r.acquire(sessionID)
	if !entry.mu.TryLock() {
		r.release(sessionID)
		return fmt.Errorf("%w: session %s", domain.ErrSubmissionInProgress, sessionID)
	}
	defer func() {
		entry.mu.Unlock()
		r.release(sessionID)
	}()

	// Distributed Locking
	if r.locker != nil {
		unlock, ok, err := r.locker.TryLock(ctx, sessionID, r.ttl)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: session %s is locked by another replica", domain.ErrSubmissionInProgress, sessionID)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
