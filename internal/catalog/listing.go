// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"time"

	"github.com/seyhanart/galeri-go/internal/random"
)

// Pagination bounds for the listing endpoint.
const (
	MaxPageLimit     = 200
	DefaultPageLimit = 50
)

// Query is one catalog listing request.
type Query struct {
	// Category filters by exact name; empty means all.
	Category string

	// Seed drives the deterministic shuffle. Empty defaults to the
	// current UTC calendar date, so every visitor on the same day sees
	// the same order.
	Seed string

	// Locale selects the projection ("tr" or "en").
	Locale string

	// Page and Limit enable pagination when either is positive. Both
	// zero means full-dump mode: the entire shuffled projected list.
	Page  int
	Limit int
}

// PageMeta is the pagination envelope returned alongside a page slice.
// Nil in full-dump mode.
type PageMeta struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Total    int    `json:"total"`
	HasMore  bool   `json:"hasMore"`
	Seed     string `json:"seed"`
	Category string `json:"category"`
}

// Listing answers catalog queries: read, filter, shuffle, paginate,
// project. It is read-only and safe for unlimited concurrent callers.
type Listing struct {
	repo *Repository
	opts ProjectOptions
	now  func() time.Time
}

// NewListing creates the listing service.
func NewListing(repo *Repository, opts ProjectOptions) *Listing {
	return &Listing{repo: repo, opts: opts, now: time.Now}
}

// List runs a catalog query. The returned meta is nil in full-dump
// mode.
func (l *Listing) List(ctx context.Context, q Query) ([]View, *PageMeta, error) {
	artworks, err := l.repo.ReadAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	if q.Category != "" {
		filtered := artworks[:0]
		for _, a := range artworks {
			if a.Category == q.Category {
				filtered = append(filtered, a)
			}
		}
		artworks = filtered
	}

	seed := q.Seed
	if seed == "" {
		seed = l.now().UTC().Format("2006-01-02")
	}
	shuffled := random.Shuffle(artworks, seed)

	if q.Page <= 0 && q.Limit <= 0 {
		views := make([]View, 0, len(shuffled))
		for _, a := range shuffled {
			views = append(views, Project(a, q.Locale, l.opts))
		}
		return views, nil, nil
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	total := len(shuffled)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	views := make([]View, 0, end-start)
	for _, a := range shuffled[start:end] {
		views = append(views, Project(a, q.Locale, l.opts))
	}

	return views, &PageMeta{
		Page:     page,
		Limit:    limit,
		Total:    total,
		HasMore:  end < total,
		Seed:     seed,
		Category: q.Category,
	}, nil
}
