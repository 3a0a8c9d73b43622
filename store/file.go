// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each collection as <dir>/<name>.json.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *FileStore) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Save writes every document to a temp file first and only renames them
// into place once all writes succeeded. A failed write leaves the previous
// files intact. Each rename is atomic but the batch is not: if a rename
// fails after an earlier one succeeded, the files on disk mix old and new
// documents.
func (f *FileStore) Save(ctx context.Context, docs map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	temps := make(map[string]string, len(docs))
	defer func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}()

	for name, data := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmp, err := writeTemp(f.dir, name, data)
		if err != nil {
			return err
		}
		temps[name] = tmp
	}

	for name, tmp := range temps {
		if err := os.Rename(tmp, f.path(name)); err != nil {
			return fmt.Errorf("failed to replace %s: %w", name, err)
		}
		delete(temps, name)
	}

	return nil
}

func writeTemp(dir, name string, data []byte) (string, error) {
	file, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}

	return file.Name(), nil
}

func (f *FileStore) Close() error { return nil }
