// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"context"
	"errors"
	"log/slog"
)

// Adapter chooses between a remote backend and the local file backend.
// Reads try the remote first; when the remote is configured but empty,
// the file copy is migrated into it opportunistically. Writes go to
// the remote when configured, else to the file.
type Adapter struct {
	remote Backend // nil when not configured
	file   Backend
	logger *slog.Logger
}

// NewAdapter creates an adapter. remote may be nil for file-only mode.
func NewAdapter(remote Backend, file Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{remote: remote, file: file, logger: logger}
}

// HasRemote reports whether a remote backend is configured.
func (a *Adapter) HasRemote() bool {
	return a.remote != nil
}

// Read returns the document bytes for key, or ErrNotFound when neither
// backend has it.
func (a *Adapter) Read(ctx context.Context, key string) ([]byte, error) {
	if a.remote != nil {
		data, err := a.remote.Read(ctx, key)
		switch {
		case err == nil:
			return data, nil
		case errors.Is(err, ErrNotFound):
			// Remote is configured but empty: fall through to the file
			// and migrate its contents.
		default:
			a.logger.Warn("remote document read failed, falling back to file", "key", key, "error", err)
		}
	}

	data, err := a.file.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	if a.remote != nil {
		// Best-effort write-through migration. A failure here only
		// delays the migration to the next read.
		if err := a.remote.Write(ctx, key, data); err != nil {
			a.logger.Warn("migrating document to remote store failed", "key", key, "error", err)
		} else {
			a.logger.Info("migrated document to remote store", "key", key, "bytes", len(data))
		}
	}

	return data, nil
}

// Write replaces the document for key on the preferred backend.
func (a *Adapter) Write(ctx context.Context, key string, data []byte) error {
	if a.remote != nil {
		return a.remote.Write(ctx, key, data)
	}
	return a.file.Write(ctx, key, data)
}

var _ Backend = (*Adapter)(nil)
