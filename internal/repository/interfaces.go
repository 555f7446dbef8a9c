// Package repository defines data access interfaces for cinelog.
// These interfaces abstract the document store, allowing different
// implementations (JSON files, in-memory for testing) while keeping the
// service layer clean.
package repository

import (
	"context"

	"github.com/cinelog/cinelog/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user account access.
type UserRepository interface {
	// Create appends a new user and persists the document.
	// Returns domain.ErrUserExists when the username is already taken
	// (exact, case-sensitive match).
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by exact username.
	// Returns domain.ErrUserNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// List returns all users in document order.
	List(ctx context.Context) ([]*domain.User, error)
}

// =============================================================================
// Movie Repository
// =============================================================================

// MovieFilter narrows a List call. The zero value matches everything.
// Filtering is applied in memory after the full document is loaded; the
// store has no query capability.
type MovieFilter struct {
	// Genre keeps only movies whose genre matches exactly, ignoring
	// case. Empty means no genre filter.
	Genre string

	// MinRating keeps only movies rated at or above this value. Zero
	// means no minimum (valid ratings start at domain.MinRating).
	MinRating float64
}

// MovieRepository defines the interface for movie catalog access.
type MovieRepository interface {
	// Create assigns the next ID (max existing + 1, starting at 1),
	// appends the movie and persists the document.
	// Returns domain.ErrTitleExists when a movie with the same title
	// already exists, ignoring case.
	Create(ctx context.Context, movie *domain.Movie) error

	// GetByID retrieves a movie by ID.
	// Returns domain.ErrMovieNotFound when absent.
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)

	// GetByTitle retrieves the first movie with an exactly matching title.
	// Returns domain.ErrMovieNotFound when absent.
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)

	// List returns movies in document (insertion) order, narrowed by the
	// filter.
	List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error)

	// Update overwrites the stored movie with the same ID and persists
	// the document. Returns domain.ErrMovieNotFound when absent.
	Update(ctx context.Context, movie *domain.Movie) error

	// Delete removes the movie with the given ID and persists the
	// remainder. Returns domain.ErrMovieNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// ExistsByTitle checks for a title match, ignoring case.
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}
