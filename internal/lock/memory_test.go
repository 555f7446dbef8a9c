package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()
	key := DocumentKey("data/movies.json")

	acquired, err := l.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	// Second acquire on the same key must fail while held.
	acquired, err = l.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.False(t, acquired)

	held, err := l.IsHeld(ctx, key)
	require.NoError(t, err)
	require.True(t, held)

	released, err := l.Release(ctx, key)
	require.NoError(t, err)
	require.True(t, released)

	acquired, err = l.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestMemoryLocker_Expiry(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()
	key := DocumentKey("data/users.json")

	acquired, err := l.Acquire(ctx, key, 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(20 * time.Millisecond)

	// Expired locks are up for grabs.
	acquired, err = l.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestMemoryLocker_AcquireWithRetry(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()
	key := DocumentKey("data/movies.json")

	acquired, err := l.Acquire(ctx, key, 30*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	// Retries long enough to outlive the holder's TTL.
	acquired, err = l.AcquireWithRetry(ctx, key, time.Minute, 10, 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)
}

func TestMemoryLocker_ReleaseNotHeld(t *testing.T) {
	l := NewMemoryLocker()

	released, err := l.Release(context.Background(), DocumentKey("missing"))
	require.NoError(t, err)
	require.False(t, released)
}
