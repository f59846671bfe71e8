package ports

import "context"

// RunLock guards against two invocations running at once.
type RunLock interface {
	// Acquire takes the lock or returns domain.ErrLockHeld.
	// The returned function releases it.
	Acquire(ctx context.Context) (release func(), err error)
}
