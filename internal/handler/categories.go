// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seyhanart/galeri-go/internal/catalog"
	"github.com/seyhanart/galeri-go/internal/model"
)

// categoryView is a category with its live artwork count.
type categoryView struct {
	model.Category
	ArtworkCount int `json:"artworkCount"`
}

// ListCategories returns categories sorted by order then name, each
// with the number of artworks currently referencing it.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("reading categories", "error", err)
		WriteInternalError(w, "Categories unavailable")
		return
	}
	artworks, err := h.artworks.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("reading catalog", "error", err)
		WriteInternalError(w, "Categories unavailable")
		return
	}

	counts := catalog.CountByCategory(artworks)
	views := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, categoryView{Category: c, ArtworkCount: counts[c.Name]})
	}
	WriteJSON(w, http.StatusOK, views)
}

// AdminCreateCategory adds a category; names are unique.
func (h *Handler) AdminCreateCategory(w http.ResponseWriter, r *http.Request) {
	var cat model.Category
	if !decodeBody(w, r, &cat) {
		return
	}
	if cat.Name == "" {
		WriteValidationError(w, map[string]string{"name": "required"})
		return
	}

	ok, err := h.categories.Append(r.Context(), cat)
	if err != nil {
		h.logger.Error("appending category", "error", err)
		WriteInternalError(w, "Category write failed")
		return
	}
	if !ok {
		WriteConflict(w, "Category already exists")
		return
	}
	WriteJSON(w, http.StatusCreated, cat)
}

// AdminUpdateCategory updates a category's presentation fields. The
// name is immutable; renames go through delete-with-reassign.
func (h *Handler) AdminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var cat model.Category
	if !decodeBody(w, r, &cat) {
		return
	}

	found, err := h.categories.Update(r.Context(), chi.URLParam(r, "name"), cat)
	if err != nil {
		h.logger.Error("updating category", "error", err)
		WriteInternalError(w, "Category write failed")
		return
	}
	if !found {
		WriteNotFound(w, "Category not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// AdminDeleteCategory removes a category after moving its artworks to
// the reassignTo target, so no record is left dangling.
func (h *Handler) AdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	target := r.URL.Query().Get("reassignTo")

	if target == "" {
		WriteValidationError(w, map[string]string{"reassignTo": "required"})
		return
	}
	if target == name {
		WriteValidationError(w, map[string]string{"reassignTo": "must differ from the deleted category"})
		return
	}

	if _, found, err := h.categories.Get(r.Context(), target); err != nil {
		h.logger.Error("reading categories", "error", err)
		WriteInternalError(w, "Category delete failed")
		return
	} else if !found {
		WriteConflict(w, "Reassignment target does not exist")
		return
	}

	moved, err := h.artworks.ReassignCategory(r.Context(), name, target)
	if err != nil {
		h.logger.Error("reassigning artworks", "error", err)
		WriteInternalError(w, "Category delete failed")
		return
	}

	found, err := h.categories.Delete(r.Context(), name)
	if err != nil {
		h.logger.Error("deleting category", "error", err)
		WriteInternalError(w, "Category delete failed")
		return
	}
	if !found {
		WriteNotFound(w, "Category not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "reassigned": moved})
}
