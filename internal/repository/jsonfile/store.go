// Package jsonfile implements the cinelog repositories over flat JSON
// documents on local disk. Each collection lives in a single file holding
// a JSON array; every mutation reloads the full document, changes it in
// memory and rewrites the file. Mutations run under a per-document lock
// so concurrent writers cannot lose each other's updates.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/lock"
	"github.com/cinelog/cinelog/internal/repository"
)

// Lock parameters for document mutations. A whole-file rewrite is
// milliseconds of work; the TTL only bounds damage from a crashed holder.
const (
	lockTTL        = 5 * time.Second
	lockMaxRetries = 50
	lockRetryDelay = 20 * time.Millisecond
)

// Store persists one collection as a JSON array in a single file.
type Store[T any] struct {
	path   string
	locker lock.Locker
	logger zerolog.Logger
}

// NewStore creates a store for the document at path.
func NewStore[T any](path string, locker lock.Locker, logger zerolog.Logger) *Store[T] {
	return &Store[T]{
		path:   path,
		locker: locker,
		logger: logger.With().Str("document", path).Logger(),
	}
}

// Load reads and decodes the full document.
// A missing or empty file yields an empty collection. A file that exists
// but does not decode is an error; no recovery is attempted.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read document %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", s.path, err)
	}
	return items, nil
}

// Save encodes the full collection and replaces the document.
// The write goes to a temp file in the same directory followed by a
// rename, so readers never observe a partially written document.
func (s *Store[T]) Save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace document %s: %w", s.path, err)
	}
	return nil
}

// Update runs fn over the loaded collection and saves its result, all
// under the document lock. fn returning an error aborts without writing.
// This is the single mutation primitive for every repository built on
// the store.
func (s *Store[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	key := lock.DocumentKey(s.path)

	acquired, err := s.locker.AcquireWithRetry(ctx, key, lockTTL, lockMaxRetries, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire document lock: %w", err)
	}
	if !acquired {
		s.logger.Warn().Msg("document lock contention, giving up")
		return repository.ErrLockNotAcquired
	}
	defer func() {
		if _, err := s.locker.Release(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Error().Err(err).Msg("failed to release document lock")
		}
	}()

	items, err := s.Load(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return s.Save(ctx, updated)
}

// Path returns the document file path.
func (s *Store[T]) Path() string {
	return s.path
}
