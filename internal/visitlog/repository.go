// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package visitlog owns the visit-analytics pipeline: the access-log
// collection, device classification, the per-session recorder, and
// the read-only analytics folds.
package visitlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/seyhanart/galeri-go/internal/docstore"
	"github.com/seyhanart/galeri-go/internal/model"
)

// AccessLogKey is the document key of the access-log collection.
const AccessLogKey = "access-log"

// Repository provides append/patch access to the access-log
// collection. Writes are best-effort: a failing store must never block
// the visitor journey, so storage errors are logged and swallowed at
// the collection level.
type Repository struct {
	col    *docstore.Collection[[]model.RawAccessLogEntry]
	logger *slog.Logger
	mu     sync.Mutex
}

// NewRepository creates an access-log repository over the given
// backend.
func NewRepository(backend docstore.Backend, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		col:    docstore.NewCollection[[]model.RawAccessLogEntry](backend, AccessLogKey, logger).SwallowWriteErrors(),
		logger: logger,
	}
}

// ReadAll returns the collection with legacy records normalized to
// degraded-but-valid entries. The persisted document is untouched.
func (r *Repository) ReadAll(ctx context.Context) ([]model.AccessLogEntry, error) {
	raws, _, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.AccessLogEntry, 0, len(raws))
	for i, raw := range raws {
		entries = append(entries, model.DecodeAccessLog(raw, i))
	}
	return entries, nil
}

func (r *Repository) writeAll(ctx context.Context, entries []model.AccessLogEntry) error {
	raws := make([]model.RawAccessLogEntry, 0, len(entries))
	for _, e := range entries {
		raws = append(raws, model.RawAccessLogEntry{AccessLogEntry: e})
	}
	return r.col.Save(ctx, raws)
}

// Append adds a new entry. Storage failures are swallowed so login
// still succeeds; the entry id remains valid for the session token
// either way.
func (r *Repository) Append(ctx context.Context, entry model.AccessLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.ReadAll(ctx)
	if err != nil {
		r.logger.Warn("access log unreadable on append, starting fresh", "error", err)
		entries = nil
	}
	return r.writeAll(ctx, append(entries, entry))
}

// UpdatePatch is the single session-end patch. Nil fields are left
// unchanged; slices overwrite wholesale since the client sends its
// full accumulated state.
type UpdatePatch struct {
	SessionEnd     *time.Time `json:"sessionEnd"`
	PagesVisited   []string   `json:"pagesVisited"`
	ArtworksViewed []string   `json:"artworksViewed"`
	OrderClicked   *bool      `json:"orderClicked"`
}

// Patch locates an entry by id and overwrites only the supplied
// fields. Returns false when the id no longer exists (e.g. the log
// store was reset), which callers report as not-found rather than an
// error. orderClicked can only be raised, never reverted.
func (r *Repository) Patch(ctx context.Context, id string, patch UpdatePatch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.ReadAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if patch.SessionEnd != nil {
			entries[i].SessionEnd = patch.SessionEnd
		}
		if patch.PagesVisited != nil {
			entries[i].PagesVisited = patch.PagesVisited
		}
		if patch.ArtworksViewed != nil {
			entries[i].ArtworksViewed = patch.ArtworksViewed
		}
		if patch.OrderClicked != nil && *patch.OrderClicked {
			entries[i].OrderClicked = true
		}
		return true, r.writeAll(ctx, entries)
	}
	return false, nil
}

// DeleteBefore removes entries whose session started before cutoff.
// Entries with an unknown start time are kept. Used by the retention
// job.
func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if !e.SessionStart.IsZero() && e.SessionStart.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, r.writeAll(ctx, kept)
}
