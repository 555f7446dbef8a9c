package repository

import "errors"

// Repository errors
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrLockNotAcquired indicates the document lock could not be
	// acquired within the retry budget.
	ErrLockNotAcquired = errors.New("document lock not acquired")
)
