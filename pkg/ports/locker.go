package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// SessionLocker defines the interface for distributed concurrency control.
// It lets the lock registry coordinate mutating access across multiple
// instances (replicas) sharing one store.
type SessionLocker interface {
	// TryLock attempts to acquire the lock for the given key (the
	// session ID) without blocking. It returns (unlock, true, nil) on
	// success and (nil, false, nil) when the lock is already held
	// elsewhere. The returned UnlockFunc MUST be called to release the
	// lock; the TTL is the safety net if the holder dies.
	TryLock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, bool, error)
}
