package storage

import "errors"

var (
	// ErrPosterNotFound indicates no content is stored under the name.
	ErrPosterNotFound = errors.New("poster not found")

	// ErrEmptyFilename indicates the filename sanitized down to nothing.
	ErrEmptyFilename = errors.New("empty filename")
)
