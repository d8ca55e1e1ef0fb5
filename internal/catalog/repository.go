// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog owns the artwork collection: typed persistence over
// the document store, locale projection, and the seeded listing
// service.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/seyhanart/galeri-go/internal/docstore"
	"github.com/seyhanart/galeri-go/internal/model"
)

// ArtworksKey is the document key of the artwork collection.
const ArtworksKey = "artworks"

// Repository provides read-all/write-all access to the artwork
// collection with legacy-shape normalization on every read. Mutations
// are read-modify-write cycles over the whole document; the mutex
// serializes them within this process, while concurrent processes
// remain last-writer-wins.
type Repository struct {
	col        *docstore.Collection[[]model.RawArtwork]
	usdDivisor float64
	mu         sync.Mutex
}

// NewRepository creates an artwork repository over the given backend.
// usdDivisor is used when upgrading legacy single-price records.
func NewRepository(backend docstore.Backend, logger *slog.Logger, usdDivisor float64) *Repository {
	return &Repository{
		col:        docstore.NewCollection[[]model.RawArtwork](backend, ArtworksKey, logger),
		usdDivisor: usdDivisor,
	}
}

// ReadAll returns the full collection in canonical form. A missing
// document yields an empty collection, not an error.
func (r *Repository) ReadAll(ctx context.Context) ([]model.Artwork, error) {
	raws, _, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}

	artworks := make([]model.Artwork, 0, len(raws))
	for _, raw := range raws {
		artworks = append(artworks, model.DecodeArtwork(raw, r.usdDivisor))
	}
	return artworks, nil
}

// WriteAll replaces the whole collection.
func (r *Repository) WriteAll(ctx context.Context, artworks []model.Artwork) error {
	raws := make([]model.RawArtwork, 0, len(artworks))
	for _, a := range artworks {
		raws = append(raws, model.EncodeArtwork(a))
	}
	return r.col.Save(ctx, raws)
}

// Append adds a record to the collection.
func (r *Repository) Append(ctx context.Context, a model.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	artworks, err := r.ReadAll(ctx)
	if err != nil {
		return err
	}
	return r.WriteAll(ctx, append(artworks, a))
}

// AppendAll adds several records in one write (bulk upload).
func (r *Repository) AppendAll(ctx context.Context, batch []model.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	artworks, err := r.ReadAll(ctx)
	if err != nil {
		return err
	}
	return r.WriteAll(ctx, append(artworks, batch...))
}

// Patch describes a partial artwork update. Nil fields are left
// unchanged. DimensionsIN is never patched directly: it is recomputed
// whenever DimensionsCM changes.
type Patch struct {
	Category      *string
	Filename      *string
	TitleTR       *string
	TitleEN       *string
	DescriptionTR *string
	DescriptionEN *string
	PriceTRY      *float64
	PriceUSD      *float64
	DimensionsCM  *string
	PriceVariants *[]model.PriceVariant
	IsFeatured    *bool
	Tags          *[]string
}

func (p Patch) apply(a *model.Artwork) {
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Filename != nil {
		a.Filename = *p.Filename
	}
	if p.TitleTR != nil {
		a.TitleTR = *p.TitleTR
	}
	if p.TitleEN != nil {
		a.TitleEN = *p.TitleEN
	}
	if p.DescriptionTR != nil {
		a.DescriptionTR = p.DescriptionTR
	}
	if p.DescriptionEN != nil {
		a.DescriptionEN = p.DescriptionEN
	}
	if p.PriceTRY != nil {
		a.PriceTRY = *p.PriceTRY
	}
	if p.PriceUSD != nil {
		a.PriceUSD = *p.PriceUSD
	}
	if p.DimensionsCM != nil {
		a.DimensionsCM = *p.DimensionsCM
		a.DimensionsIN = model.DimensionsToInches(*p.DimensionsCM)
	}
	if p.PriceVariants != nil {
		a.PriceVariants = *p.PriceVariants
	}
	if p.IsFeatured != nil {
		a.IsFeatured = *p.IsFeatured
	}
	if p.Tags != nil {
		a.Tags = *p.Tags
	}
}

// PatchByID applies a partial update to one record. Returns false when
// the id does not exist.
func (r *Repository) PatchByID(ctx context.Context, id string, patch Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artworks, err := r.ReadAll(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i := range artworks {
		if artworks[i].ID == id {
			patch.apply(&artworks[i])
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	return true, r.WriteAll(ctx, artworks)
}

// BulkPatch applies the same partial update to every listed id and
// returns how many records matched.
func (r *Repository) BulkPatch(ctx context.Context, ids []string, patch Patch) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artworks, err := r.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	matched := 0
	for i := range artworks {
		if wanted[artworks[i].ID] {
			patch.apply(&artworks[i])
			matched++
		}
	}
	if matched == 0 {
		return 0, nil
	}
	return matched, r.WriteAll(ctx, artworks)
}

// ReassignCategory moves every artwork in category from to category to
// in a single write. Used by category deletion so no record is left
// referencing a removed category.
func (r *Repository) ReassignCategory(ctx context.Context, from, to string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artworks, err := r.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	moved := 0
	for i := range artworks {
		if artworks[i].Category == from {
			artworks[i].Category = to
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	if err := r.WriteAll(ctx, artworks); err != nil {
		return 0, fmt.Errorf("reassigning category %q to %q: %w", from, to, err)
	}
	return moved, nil
}

// Delete removes one record by id. Returns false when the id does not
// exist. Deleting the underlying media bytes is the caller's concern.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artworks, err := r.ReadAll(ctx)
	if err != nil {
		return false, err
	}

	kept := artworks[:0]
	found := false
	for _, a := range artworks {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return false, nil
	}
	return true, r.WriteAll(ctx, kept)
}
