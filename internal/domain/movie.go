// Package domain contains the core business entities for cinelog.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the movie catalog.
package domain

import (
	"strings"
	"time"
)

// Rating bounds. Ratings outside this range are rejected at creation
// and update time.
const (
	MinRating = 1
	MaxRating = 10
)

// Movie represents a single catalog entry.
// Movies are owned by the user who created them; only the owner may
// edit or delete an entry.
type Movie struct {
	// ID is the unique identifier for the movie (auto-generated).
	// IDs are assigned as max(existing)+1 and never reused, so they
	// are not contiguous after deletions.
	ID int64 `json:"id"`

	// Title is the movie title. Required. Creation rejects a title that
	// already exists in the catalog (case-insensitive).
	Title string `json:"title"`

	// Genre is a free-form genre label. Required.
	Genre string `json:"genre"`

	// Rating is the user rating, constrained to [MinRating, MaxRating].
	Rating float64 `json:"rating"`

	// Review is an optional free-text review.
	Review string `json:"review,omitempty"`

	// Description is an optional plot description.
	Description string `json:"description,omitempty"`

	// Poster is the sanitized filename of an uploaded poster image.
	// Empty means no image.
	Poster string `json:"poster,omitempty"`

	// Owner is the username of the user who created the entry.
	Owner string `json:"owner"`

	// CreatedAt is the timestamp when the entry was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the entry was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMovie creates a new Movie owned by the given user.
// The ID is assigned by the repository on insert.
func NewMovie(owner string) *Movie {
	now := time.Now().UTC()
	return &Movie{
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasPoster reports whether the movie has an uploaded poster image.
func (m *Movie) HasPoster() bool {
	return m.Poster != ""
}

// IsOwnedBy reports whether the given username owns this entry.
// An empty owner field (legacy records) denies everyone but is kept
// readable; the check is exact-match like usernames themselves.
func (m *Movie) IsOwnedBy(username string) bool {
	return m.Owner != "" && m.Owner == username
}

// TitleEquals reports whether the movie's title matches the given one,
// ignoring case. Duplicate detection at creation time uses this.
func (m *Movie) TitleEquals(title string) bool {
	return strings.EqualFold(m.Title, title)
}

// ValidateRating checks that a rating lies within [MinRating, MaxRating].
func ValidateRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}
