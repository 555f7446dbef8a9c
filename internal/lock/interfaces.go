// Package lock provides mutual exclusion for the JSON document files.
// For single-node deployments, memory-based locks are used.
// For deployments sharing the data directory, Redis-based locks can be used.
package lock

import (
	"context"
	"time"
)

// Locker defines the interface for document locking.
// This abstraction allows switching between in-memory locks (single-node)
// and Redis-based locks (shared storage) without changing business logic.
type Locker interface {
	// Acquire attempts to acquire a lock.
	// Returns true if the lock was acquired, false if it's held by another caller.
	// The lock will automatically expire after the specified TTL.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// AcquireWithRetry attempts to acquire a lock with retries.
	// Will retry up to maxRetries times with retryDelay between attempts.
	AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (bool, error)

	// Release releases a lock.
	// Returns true if the lock was released, false if it wasn't held.
	Release(ctx context.Context, key string) (bool, error)

	// IsHeld checks if the lock is currently held.
	IsHeld(ctx context.Context, key string) (bool, error)
}

// DocumentKey returns the lock key guarding a JSON document file.
// Every read-modify-write cycle over the same file must hold this key.
func DocumentKey(path string) string {
	return "lock:document:" + path
}
