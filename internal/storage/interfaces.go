// Package storage defines backends for poster image blobs.
// The storage layer persists and retrieves uploaded images by their
// sanitized filename; catalog metadata never lives here.
package storage

import (
	"context"
	"io"
)

// Backend defines the interface for poster storage backends.
// Implementations include the local filesystem (default) and S3.
//
// Names are sanitized filenames; storing under an existing name silently
// overwrites the previous content. There is no deduplication and no
// versioning.
type Backend interface {
	// Store writes the content under the given name, replacing any
	// previous content stored under the same name.
	Store(ctx context.Context, name string, reader io.Reader) error

	// Open returns a reader for the stored content.
	// Returns ErrPosterNotFound if nothing is stored under the name.
	// The caller must close the returned reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Exists reports whether content is stored under the name.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the content stored under the name.
	// Returns ErrPosterNotFound if nothing is stored under it.
	Delete(ctx context.Context, name string) error
}
