// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/seyhanart/galeri-go/internal/auth"
	"github.com/seyhanart/galeri-go/internal/catalog"
	"github.com/seyhanart/galeri-go/internal/logging"
	"github.com/seyhanart/galeri-go/internal/middleware"
	"github.com/seyhanart/galeri-go/internal/version"
	"github.com/seyhanart/galeri-go/internal/visitlog"
)

// Deps holds everything the API handlers need.
type Deps struct {
	Logger     *slog.Logger
	Artworks   *catalog.Repository
	Categories *catalog.CategoryRepository
	Listing    *catalog.Listing
	Visits     *visitlog.Repository
	Sessions   *visitlog.Service
	Tokens     *auth.TokenIssuer
	Limiter    *middleware.LoginLimiter
	Ring       *logging.RingHandler // nil when event retention is off
	Version    version.Info

	ProjectOpts catalog.ProjectOptions

	// Argon2id encoded hashes for the gate and admin passwords.
	GatePasswordHash  string
	AdminPasswordHash string
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	logger     *slog.Logger
	artworks   *catalog.Repository
	categories *catalog.CategoryRepository
	listing    *catalog.Listing
	visits     *visitlog.Repository
	sessions   *visitlog.Service
	tokens     *auth.TokenIssuer
	limiter    *middleware.LoginLimiter
	ring       *logging.RingHandler
	version    version.Info

	projectOpts catalog.ProjectOptions
	sanitizer   *bluemonday.Policy

	// The admin hash can be rotated at runtime through the password
	// endpoint; the gate hash only changes with a restart.
	mu        sync.RWMutex
	gateHash  string
	adminHash string
}

// New creates the API handler set.
func New(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		artworks:    deps.Artworks,
		categories:  deps.Categories,
		listing:     deps.Listing,
		visits:      deps.Visits,
		sessions:    deps.Sessions,
		tokens:      deps.Tokens,
		limiter:     deps.Limiter,
		ring:        deps.Ring,
		version:     deps.Version,
		projectOpts: deps.ProjectOpts,
		sanitizer:   bluemonday.UGCPolicy(),
		gateHash:    deps.GatePasswordHash,
		adminHash:   deps.AdminPasswordHash,
	}
}
