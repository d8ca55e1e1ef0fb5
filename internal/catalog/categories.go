// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/seyhanart/galeri-go/internal/docstore"
	"github.com/seyhanart/galeri-go/internal/model"
)

// CategoriesKey is the document key of the category collection.
const CategoriesKey = "categories"

// CategoryRepository persists the category collection. Same
// whole-document semantics as the artwork repository.
type CategoryRepository struct {
	col *docstore.Collection[[]model.Category]
	mu  sync.Mutex
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(backend docstore.Backend, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		col: docstore.NewCollection[[]model.Category](backend, CategoriesKey, logger),
	}
}

// ReadAll returns all categories sorted by order then name.
func (r *CategoryRepository) ReadAll(ctx context.Context) ([]model.Category, error) {
	cats, _, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Order != cats[j].Order {
			return cats[i].Order < cats[j].Order
		}
		return cats[i].Name < cats[j].Name
	})
	return cats, nil
}

// Get returns one category by name.
func (r *CategoryRepository) Get(ctx context.Context, name string) (model.Category, bool, error) {
	cats, _, err := r.col.Load(ctx)
	if err != nil {
		return model.Category{}, false, err
	}
	for _, c := range cats {
		if c.Name == name {
			return c, true, nil
		}
	}
	return model.Category{}, false, nil
}

// Append adds a category. Returns false when the name already exists.
func (r *CategoryRepository) Append(ctx context.Context, cat model.Category) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, _, err := r.col.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range cats {
		if c.Name == cat.Name {
			return false, nil
		}
	}
	return true, r.col.Save(ctx, append(cats, cat))
}

// Update replaces the stored fields of the named category. Returns
// false when the name does not exist.
func (r *CategoryRepository) Update(ctx context.Context, name string, cat model.Category) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, _, err := r.col.Load(ctx)
	if err != nil {
		return false, err
	}
	for i := range cats {
		if cats[i].Name == name {
			cat.Name = name // names are immutable keys
			cats[i] = cat
			return true, r.col.Save(ctx, cats)
		}
	}
	return false, nil
}

// Delete removes the named category. Callers must have reassigned its
// artworks first; see Repository.ReassignCategory.
func (r *CategoryRepository) Delete(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cats, _, err := r.col.Load(ctx)
	if err != nil {
		return false, err
	}
	kept := cats[:0]
	found := false
	for _, c := range cats {
		if c.Name == name {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return false, nil
	}
	return true, r.col.Save(ctx, kept)
}

// CountByCategory derives per-category artwork counts from a catalog
// snapshot. artworkCount is never stored.
func CountByCategory(artworks []model.Artwork) map[string]int {
	counts := make(map[string]int, 8)
	for _, a := range artworks {
		counts[a.Category]++
	}
	return counts
}
