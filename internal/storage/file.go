package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// FileStore persists each collection as <name>.json under a data directory.
// It is the single-user local deployment backend. Writes go through a temp
// file and rename so a crash never leaves a half-written collection behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a file store
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to create data directory %q", dir), err)
	}
	return &FileStore{dir: dir}, nil
}

// Read returns the collection's raw JSON, or nil when the file does not exist
func (f *FileStore) Read(ctx context.Context, collection string) ([]byte, error) {
	path, err := f.path(collection)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read collection %q", collection), err)
	}
	return data, nil
}

// Write replaces the collection file atomically
func (f *FileStore) Write(ctx context.Context, collection string, data []byte) error {
	path, err := f.path(collection)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, collection+"-*.tmp")
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stage collection %q", collection), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorageError(fmt.Sprintf("failed to write collection %q", collection), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError(fmt.Sprintf("failed to write collection %q", collection), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError(fmt.Sprintf("failed to commit collection %q", collection), err)
	}
	return nil
}

// path validates the collection name and maps it to its file.
// Names must not escape the data directory.
func (f *FileStore) path(collection string) (string, error) {
	if collection == "" || strings.ContainsAny(collection, `/\.`) {
		return "", apperrors.NewValidationError(fmt.Sprintf("invalid collection name %q", collection))
	}
	return filepath.Join(f.dir, collection+".json"), nil
}
