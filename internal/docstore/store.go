// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package docstore persists whole JSON documents identified by a
// logical key. A document is the unit of storage: collections are read
// and written in full, so concurrent writers follow last-writer-wins.
// Two backends exist, a local file tree and Redis; the Adapter prefers
// Redis when configured and lazily migrates file contents into it.
package docstore

import "context"

// Backend reads and writes raw document bytes by key.
// All implementations must be safe for concurrent use.
type Backend interface {
	// Read returns the document bytes for key, or ErrNotFound if the
	// key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the document bytes for key.
	Write(ctx context.Context, key string, data []byte) error
}

// Error is the error type for docstore operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the document key has no stored value.
	ErrNotFound Error = "document not found"
)
