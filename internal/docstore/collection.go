// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Collection is a typed JSON view over a single document key. T is the
// whole document value, typically a slice of records.
type Collection[T any] struct {
	backend Backend
	key     string
	logger  *slog.Logger

	// swallowWriteErrors makes Save log-and-succeed instead of
	// propagating storage failures. Used for the access-log
	// collection: logging must never block the visitor journey, and a
	// read-only filesystem in a serverless deploy is an expected
	// condition there.
	swallowWriteErrors bool
}

// NewCollection creates a typed collection over the given document key.
func NewCollection[T any](backend Backend, key string, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{backend: backend, key: key, logger: logger}
}

// SwallowWriteErrors marks the collection best-effort on write.
func (c *Collection[T]) SwallowWriteErrors() *Collection[T] {
	c.swallowWriteErrors = true
	return c
}

// Key returns the document key.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads and decodes the document. A missing document or an
// unreadable store yields the zero value with found=false and no
// error: the catalog stays functional-but-empty rather than broken.
// Malformed JSON is the one condition reported as an error, since it
// means stored data exists but cannot be trusted.
func (c *Collection[T]) Load(ctx context.Context) (T, bool, error) {
	var value T

	data, err := c.backend.Read(ctx, c.key)
	if err != nil {
		if err != ErrNotFound {
			c.logger.Warn("collection read failed, serving empty", "key", c.key, "error", err)
		}
		return value, false, nil
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decoding document %q: %w", c.key, err)
	}
	return value, true, nil
}

// Save encodes and writes the whole document.
func (c *Collection[T]) Save(ctx context.Context, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document %q: %w", c.key, err)
	}

	if err := c.backend.Write(ctx, c.key, data); err != nil {
		if c.swallowWriteErrors {
			c.logger.Warn("collection write failed, ignoring", "key", c.key, "error", err)
			return nil
		}
		return err
	}
	return nil
}
