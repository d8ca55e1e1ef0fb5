// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores each document as <dir>/<key>.json.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file backend rooted at dir. The directory
// is created on first write, not here, so a read-only filesystem still
// allows reads of pre-seeded data.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// path maps a logical key to its file location.
func (f *FileBackend) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Read returns the document bytes for key.
func (f *FileBackend) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading document %q: %w", key, err)
	}
	return data, nil
}

// Write replaces the document for key, creating parent directories as
// needed. The write goes through a temp file and rename so a crashed
// process never leaves a half-written collection behind.
func (f *FileBackend) Write(_ context.Context, key string, data []byte) error {
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing document %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing document %q: %w", key, err)
	}
	return nil
}

var _ Backend = (*FileBackend)(nil)
