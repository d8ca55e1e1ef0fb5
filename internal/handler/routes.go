// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/seyhanart/galeri-go/internal/middleware"
)

// Routes builds the full API router. allowedOrigins configures CORS
// for the frontend; empty disables cross-origin access.
func (h *Handler) Routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	if len(allowedOrigins) > 0 {
		r.Use(middleware.CORS(allowedOrigins))
	}

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		// Password gates, rate limited per IP.
		r.Group(func(r chi.Router) {
			if h.limiter != nil {
				r.Use(h.limiter.Middleware)
			}
			r.Post("/login", h.Login)
			r.Post("/admin/login", h.AdminLogin)
		})

		// Visitor surface: any valid session token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(h.tokens))

			r.Get("/artworks", h.ListArtworks)
			r.Get("/artworks/{id}", h.GetArtwork)
			r.Get("/categories", h.ListCategories)
			r.Patch("/session-log", h.PatchSessionLog)
		})

		// Admin console.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireToken(h.tokens))
			r.Use(middleware.RequireAdmin)

			r.Get("/artworks", h.AdminListArtworks)
			r.Post("/artworks", h.AdminCreateArtwork)
			r.Post("/artworks/bulk", h.AdminBulkCreateArtworks)
			r.Patch("/artworks", h.AdminBulkPatchArtworks)
			r.Patch("/artworks/{id}", h.AdminPatchArtwork)
			r.Delete("/artworks/{id}", h.AdminDeleteArtwork)

			r.Get("/categories", h.ListCategories)
			r.Post("/categories", h.AdminCreateCategory)
			r.Patch("/categories/{name}", h.AdminUpdateCategory)
			r.Delete("/categories/{name}", h.AdminDeleteCategory)

			r.Get("/access-logs", h.AdminListAccessLogs)
			r.Get("/analytics", h.AdminAnalytics)
			r.Get("/events", h.AdminEvents)
			r.Post("/password", h.ChangeAdminPassword)
		})
	})

	return r
}
