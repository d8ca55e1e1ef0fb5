// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/seyhanart/galeri-go/internal/logging"
	"github.com/seyhanart/galeri-go/internal/middleware"
	"github.com/seyhanart/galeri-go/internal/visitlog"
)

type sessionPatchRequest struct {
	SessionEnd     *time.Time `json:"sessionEnd"`
	PagesVisited   []string   `json:"pagesVisited"`
	ArtworksViewed []string   `json:"artworksViewed"`
	OrderClicked   *bool      `json:"orderClicked"`
}

// PatchSessionLog applies the end-of-session patch to the caller's own
// access-log entry, located through the token's log id. Typically hit
// once via sendBeacon on page unload.
func (h *Handler) PatchSessionLog(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok || claims.LogID == "" {
		WriteUnauthorized(w, "Session token carries no log entry")
		return
	}

	var req sessionPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := visitlog.UpdatePatch{
		SessionEnd:     req.SessionEnd,
		PagesVisited:   req.PagesVisited,
		ArtworksViewed: req.ArtworksViewed,
		OrderClicked:   req.OrderClicked,
	}
	if patch.SessionEnd == nil {
		now := time.Now().UTC()
		patch.SessionEnd = &now
	}

	found, err := h.visits.Patch(r.Context(), claims.LogID, patch)
	if err != nil {
		h.logger.Error("patching access log", "error", err)
		WriteInternalError(w, "Session log unavailable")
		return
	}
	if !found {
		WriteNotFound(w, "Session log entry not found")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// AdminListAccessLogs returns all entries, newest session first.
func (h *Handler) AdminListAccessLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.visits.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("reading access log", "error", err)
		WriteInternalError(w, "Access log unavailable")
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SessionStart.After(entries[j].SessionStart)
	})
	WriteJSON(w, http.StatusOK, entries)
}

// AdminAnalytics recomputes the analytics report from the full log.
func (h *Handler) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	entries, err := h.visits.ReadAll(r.Context())
	if err != nil {
		h.logger.Error("reading access log", "error", err)
		WriteInternalError(w, "Analytics unavailable")
		return
	}
	WriteJSON(w, http.StatusOK, visitlog.Aggregate(entries))
}

// AdminEvents returns recent WARN+ log records from the in-memory ring.
func (h *Handler) AdminEvents(w http.ResponseWriter, _ *http.Request) {
	if h.ring == nil {
		WriteJSON(w, http.StatusOK, []logging.Event{})
		return
	}
	WriteJSON(w, http.StatusOK, h.ring.Events())
}
