// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/seyhanart/galeri-go/internal/auth"
	"github.com/seyhanart/galeri-go/internal/catalog"
	"github.com/seyhanart/galeri-go/internal/util"
	"github.com/seyhanart/galeri-go/internal/visitlog"
)

type loginRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

type loginResponse struct {
	Token  string `json:"token"`
	Locale string `json:"locale"`
}

// Login handles the gallery gate: one shared password, visitor
// identity captured into the access log, session token returned.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	fieldErrors := make(map[string]string)
	if req.FullName == "" {
		fieldErrors["fullName"] = "required"
	}
	if req.Phone == "" {
		fieldErrors["phone"] = "required"
	}
	if req.Password == "" {
		fieldErrors["password"] = "required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	locale := req.Locale
	if locale != catalog.LocaleEN {
		locale = catalog.LocaleTR
	}

	h.mu.RLock()
	gateHash := h.gateHash
	h.mu.RUnlock()

	ok, err := auth.CheckPassword(req.Password, gateHash)
	if err != nil {
		h.logger.Error("gate password hash unusable", "error", err)
		WriteInternalError(w, "Login unavailable")
		return
	}
	if !ok {
		WriteUnauthorized(w, "Invalid password")
		return
	}

	entry, err := h.sessions.Start(r.Context(), visitlog.StartInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		UserAgent: r.UserAgent(),
		IP:        util.RealIP(r),
	})
	if err != nil {
		// Entry creation is best-effort; the login still succeeds.
		h.logger.Warn("access log entry not persisted", "error", err)
	}

	token, err := h.tokens.Mint(auth.Claims{LogID: entry.ID, Locale: locale})
	if err != nil {
		h.logger.Error("minting session token", "error", err)
		WriteInternalError(w, "Login unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{Token: token, Locale: locale})
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLogin exchanges the admin password for an admin token. The
// stored hash is upgraded in place when its parameters are outdated.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Password == "" {
		WriteValidationError(w, map[string]string{"password": "required"})
		return
	}

	h.mu.RLock()
	adminHash := h.adminHash
	h.mu.RUnlock()

	ok, err := auth.CheckPassword(req.Password, adminHash)
	if err != nil {
		h.logger.Error("admin password hash unusable", "error", err)
		WriteInternalError(w, "Login unavailable")
		return
	}
	if !ok {
		WriteUnauthorized(w, "Invalid password")
		return
	}

	if auth.NeedsRehash(adminHash) {
		if rehashed, err := auth.HashPassword(req.Password); err == nil {
			h.mu.Lock()
			h.adminHash = rehashed
			h.mu.Unlock()
		}
	}

	token, err := h.tokens.Mint(auth.Claims{Admin: true})
	if err != nil {
		h.logger.Error("minting admin token", "error", err)
		WriteInternalError(w, "Login unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangeAdminPassword rotates the in-memory admin hash. The
// environment variable remains the source of truth across restarts;
// the response reminds the operator to update it.
func (h *Handler) ChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 8 {
		WriteValidationError(w, map[string]string{"newPassword": "must be at least 8 characters"})
		return
	}

	h.mu.RLock()
	adminHash := h.adminHash
	h.mu.RUnlock()

	ok, err := auth.CheckPassword(req.CurrentPassword, adminHash)
	if err != nil {
		h.logger.Error("admin password hash unusable", "error", err)
		WriteInternalError(w, "Password change unavailable")
		return
	}
	if !ok {
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("hashing new admin password", "error", err)
		WriteInternalError(w, "Password change unavailable")
		return
	}

	h.mu.Lock()
	h.adminHash = newHash
	h.mu.Unlock()

	h.logger.Info("admin password rotated")
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"newHash": newHash,
		"note":    "update GALERI_ADMIN_PASSWORD_HASH to persist across restarts",
	})
}
