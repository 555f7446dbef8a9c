// Package domain contains the core business entities for cinelog.
package domain

import (
	"errors"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (disk, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates an account with the same username exists.
	ErrUserExists = errors.New("username already taken")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordMismatch indicates the password confirmation differs
	// from the password at registration.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ===========================================
	// Movie Errors
	// ===========================================

	// ErrMovieNotFound indicates the requested movie does not exist.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrTitleExists indicates a movie with the same title (ignoring
	// case) already exists.
	ErrTitleExists = errors.New("movie with this title already exists")

	// ErrMissingField indicates a required field (title, genre, rating,
	// username, password) was empty.
	ErrMissingField = errors.New("required field is missing")

	// ErrInvalidRating indicates the rating is unparseable or outside
	// the allowed range.
	ErrInvalidRating = errors.New("rating must be a number between 1 and 10")

	// ErrNotOwner indicates the acting user does not own the movie
	// being modified.
	ErrNotOwner = errors.New("only the owner may modify this movie")
)
