// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/seyhanart/galeri-go/internal/catalog"
	"github.com/seyhanart/galeri-go/internal/middleware"
	"github.com/seyhanart/galeri-go/internal/model"
	"github.com/seyhanart/galeri-go/internal/util"
)

// listEnvelope is the paginated listing response.
type listEnvelope struct {
	Items    []catalog.View `json:"items"`
	Page     int            `json:"page"`
	Limit    int            `json:"limit"`
	Total    int            `json:"total"`
	HasMore  bool           `json:"hasMore"`
	Seed     string         `json:"seed"`
	Category string         `json:"category,omitempty"`
}

// queryInt parses a positive integer query parameter; anything else
// counts as absent.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// requestLocale resolves the projection locale: explicit query
// parameter first, then the locale baked into the session token.
func requestLocale(r *http.Request) string {
	if loc := r.URL.Query().Get("locale"); loc == catalog.LocaleEN || loc == catalog.LocaleTR {
		return loc
	}
	if claims, ok := middleware.GetClaims(r); ok && claims.Locale != "" {
		return claims.Locale
	}
	return catalog.LocaleTR
}

// ListArtworks serves the visitor catalog: deterministic shuffle,
// optional category filter, full-dump or paginated.
func (h *Handler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Category: r.URL.Query().Get("category"),
		Seed:     r.URL.Query().Get("seed"),
		Locale:   requestLocale(r),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	views, meta, err := h.listing.List(r.Context(), q)
	if err != nil {
		// The visitor catalog stays functional-but-empty when storage
		// is unreachable; only admin surfaces report storage errors.
		h.logger.Error("listing catalog", "error", err)
		views = []catalog.View{}
		if q.Page > 0 || q.Limit > 0 {
			meta = &catalog.PageMeta{Page: max(q.Page, 1), Limit: q.Limit, Seed: q.Seed, Category: q.Category}
		}
	}

	if meta == nil {
		// Full-dump mode keeps the legacy bare-array shape.
		WriteJSON(w, http.StatusOK, views)
		return
	}

	WriteJSON(w, http.StatusOK, listEnvelope{
		Items:    views,
		Page:     meta.Page,
		Limit:    meta.Limit,
		Total:    meta.Total,
		HasMore:  meta.HasMore,
		Seed:     meta.Seed,
		Category: meta.Category,
	})
}

// GetArtwork serves one projected record for lightbox deep links.
func (h *Handler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	artworks, err := h.artworks.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("reading catalog", "error", err)
		WriteInternalError(w, "Catalog unavailable")
		return
	}

	for _, a := range artworks {
		if a.ID == id {
			WriteJSON(w, http.StatusOK, catalog.Project(a, requestLocale(r), h.projectOpts))
			return
		}
	}
	WriteNotFound(w, "Artwork not found")
}

// AdminListArtworks returns the raw dual-locale records, unshuffled.
func (h *Handler) AdminListArtworks(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.artworks.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("reading catalog", "error", err)
		WriteInternalError(w, "Catalog unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, artworks)
}

// normalizeArtwork applies create-time normalization: generated id,
// sanitized rich-text descriptions, safe filename, derived inches.
func (h *Handler) normalizeArtwork(a *model.Artwork) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.DescriptionTR != nil {
		clean := h.sanitizer.Sanitize(*a.DescriptionTR)
		a.DescriptionTR = &clean
	}
	if a.DescriptionEN != nil {
		clean := h.sanitizer.Sanitize(*a.DescriptionEN)
		a.DescriptionEN = &clean
	}
	if !a.IsExternalMedia() {
		a.Filename = util.SafeMediaFilename(a.Filename)
	}
	if a.DimensionsIN == "" && a.DimensionsCM != "" {
		a.DimensionsIN = model.DimensionsToInches(a.DimensionsCM)
	}
}

// validateArtwork reports missing required fields.
func validateArtwork(a model.Artwork) map[string]string {
	fieldErrors := make(map[string]string)
	if a.Category == "" {
		fieldErrors["category"] = "required"
	}
	if a.Filename == "" {
		fieldErrors["filename"] = "required"
	}
	if a.TitleTR == "" && a.TitleEN == "" {
		fieldErrors["titleTR"] = "at least one locale title required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// AdminCreateArtwork appends one record to the catalog.
func (h *Handler) AdminCreateArtwork(w http.ResponseWriter, r *http.Request) {
	var a model.Artwork
	if !decodeBody(w, r, &a) {
		return
	}

	h.normalizeArtwork(&a)
	if fieldErrors := validateArtwork(a); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if err := h.artworks.Append(r.Context(), a); err != nil {
		h.logger.Error("appending artwork", "error", err)
		WriteInternalError(w, "Catalog write failed")
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}

type bulkCreateRequest struct {
	Items []model.Artwork `json:"items"`
}

// AdminBulkCreateArtworks appends an upload manifest in one catalog
// write.
func (h *Handler) AdminBulkCreateArtworks(w http.ResponseWriter, r *http.Request) {
	var req bulkCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		WriteValidationError(w, map[string]string{"items": "required"})
		return
	}

	for i := range req.Items {
		h.normalizeArtwork(&req.Items[i])
		if fieldErrors := validateArtwork(req.Items[i]); fieldErrors != nil {
			WriteValidationError(w, fieldErrors)
			return
		}
	}

	if err := h.artworks.AppendAll(r.Context(), req.Items); err != nil {
		h.logger.Error("bulk appending artworks", "error", err)
		WriteInternalError(w, "Catalog write failed")
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"created": len(req.Items)})
}

// artworkPatchRequest mirrors catalog.Patch with JSON tags. Absent
// fields stay nil and are left untouched.
type artworkPatchRequest struct {
	Category      *string               `json:"category"`
	Filename      *string               `json:"filename"`
	TitleTR       *string               `json:"titleTR"`
	TitleEN       *string               `json:"titleEN"`
	DescriptionTR *string               `json:"descriptionTR"`
	DescriptionEN *string               `json:"descriptionEN"`
	PriceTRY      *float64              `json:"priceTRY"`
	PriceUSD      *float64              `json:"priceUSD"`
	DimensionsCM  *string               `json:"dimensionsCM"`
	PriceVariants *[]model.PriceVariant `json:"priceVariants"`
	IsFeatured    *bool                 `json:"isFeatured"`
	Tags          *[]string             `json:"tags"`
}

func (h *Handler) toPatch(req artworkPatchRequest) catalog.Patch {
	if req.DescriptionTR != nil {
		clean := h.sanitizer.Sanitize(*req.DescriptionTR)
		req.DescriptionTR = &clean
	}
	if req.DescriptionEN != nil {
		clean := h.sanitizer.Sanitize(*req.DescriptionEN)
		req.DescriptionEN = &clean
	}
	if req.Filename != nil && !strings.HasPrefix(*req.Filename, "http://") && !strings.HasPrefix(*req.Filename, "https://") {
		safe := util.SafeMediaFilename(*req.Filename)
		req.Filename = &safe
	}
	return catalog.Patch{
		Category:      req.Category,
		Filename:      req.Filename,
		TitleTR:       req.TitleTR,
		TitleEN:       req.TitleEN,
		DescriptionTR: req.DescriptionTR,
		DescriptionEN: req.DescriptionEN,
		PriceTRY:      req.PriceTRY,
		PriceUSD:      req.PriceUSD,
		DimensionsCM:  req.DimensionsCM,
		PriceVariants: req.PriceVariants,
		IsFeatured:    req.IsFeatured,
		Tags:          req.Tags,
	}
}

// AdminPatchArtwork partially updates one record.
func (h *Handler) AdminPatchArtwork(w http.ResponseWriter, r *http.Request) {
	var req artworkPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	found, err := h.artworks.PatchByID(r.Context(), chi.URLParam(r, "id"), h.toPatch(req))
	if err != nil {
		h.logger.Error("patching artwork", "error", err)
		WriteInternalError(w, "Catalog write failed")
		return
	}
	if !found {
		WriteNotFound(w, "Artwork not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

type bulkPatchRequest struct {
	IDs    []string            `json:"ids"`
	Fields artworkPatchRequest `json:"fields"`
}

// AdminBulkPatchArtworks applies one partial update to many records.
func (h *Handler) AdminBulkPatchArtworks(w http.ResponseWriter, r *http.Request) {
	var req bulkPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteValidationError(w, map[string]string{"ids": "required"})
		return
	}

	matched, err := h.artworks.BulkPatch(r.Context(), req.IDs, h.toPatch(req.Fields))
	if err != nil {
		h.logger.Error("bulk patching artworks", "error", err)
		WriteInternalError(w, "Catalog write failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"matched": matched})
}

// AdminDeleteArtwork removes one record. Stored media bytes live
// outside this service and are not touched.
func (h *Handler) AdminDeleteArtwork(w http.ResponseWriter, r *http.Request) {
	found, err := h.artworks.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("deleting artwork", "error", err)
		WriteInternalError(w, "Catalog write failed")
		return
	}
	if !found {
		WriteNotFound(w, "Artwork not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
