package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker guards a submission across instances (replicas) that
// may serve the same session.
type DistributedLocker interface {
	// TryLock makes a single attempt to acquire the lock for key.
	// It returns domain.ErrLockHeld when another owner holds it.
	// The lock expires on its own after ttl if never released.
	// Returns an UnlockFunc that MUST be called to release the lock.
	TryLock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
