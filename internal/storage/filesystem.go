package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemBackend stores posters as flat files under a base directory.
type FilesystemBackend struct {
	baseDir string
}

// NewFilesystemBackend creates a filesystem backend rooted at baseDir,
// creating the directory if it does not exist.
func NewFilesystemBackend(baseDir string) (*FilesystemBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", baseDir, err)
	}
	return &FilesystemBackend{baseDir: baseDir}, nil
}

// fullPath resolves a sanitized name inside the base directory.
func (b *FilesystemBackend) fullPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrEmptyFilename
	}
	return filepath.Join(b.baseDir, name), nil
}

// Store writes the content under the given name, overwriting silently.
func (b *FilesystemBackend) Store(ctx context.Context, name string, reader io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := b.fullPath(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create poster file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write poster file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close poster file: %w", err)
	}
	return nil
}

// Open returns a reader for the stored content.
func (b *FilesystemBackend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := b.fullPath(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrPosterNotFound
		}
		return nil, fmt.Errorf("open poster file: %w", err)
	}
	return f, nil
}

// Exists reports whether content is stored under the name.
func (b *FilesystemBackend) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path, err := b.fullPath(name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat poster file: %w", err)
	}
	return true, nil
}

// Delete removes the content stored under the name.
func (b *FilesystemBackend) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := b.fullPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrPosterNotFound
		}
		return fmt.Errorf("remove poster file: %w", err)
	}
	return nil
}

// Ensure FilesystemBackend implements Backend.
var _ Backend = (*FilesystemBackend)(nil)
