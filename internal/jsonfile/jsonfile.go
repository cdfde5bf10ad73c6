// Package jsonfile persists a flat collection of records as one JSON array on disk.
// The whole file is read and rewritten on every call; callers serialize access.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StorageError reports a failed read or write of the backing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, filepath.Base(e.Path), e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type Collection[T any] struct {
	path string
}

func New[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

func (c *Collection[T]) Path() string { return c.path }

// Load returns the stored records. A missing file is an empty collection.
func (c *Collection[T]) Load() ([]T, error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return []T{}, &StorageError{Op: "read", Path: c.path, Err: err}
	}
	out := []T{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return []T{}, &StorageError{Op: "decode", Path: c.path, Err: err}
	}
	return out, nil
}

// Save replaces the file contents. It writes a sibling temp file and renames it
// so readers never observe a half-written array.
func (c *Collection[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: c.path, Err: err}
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "write", Path: c.path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*")
	if err != nil {
		return &StorageError{Op: "write", Path: c.path, Err: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return &StorageError{Op: "write", Path: c.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "write", Path: c.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return &StorageError{Op: "write", Path: c.path, Err: err}
	}
	return nil
}
