// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package visitlog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seyhanart/galeri-go/internal/model"
)

// GeoResolver resolves an IP to a country code and, optionally, a
// city. Both lookups degrade to "" on failure.
type GeoResolver interface {
	LookupCountry(ip string) string
	LookupCity(ip string) string
}

// Service creates access-log entries at login. Everything it does is
// best-effort beyond generating the entry id, which the session token
// needs.
type Service struct {
	repo *Repository
	geo  GeoResolver // nil when geolocation is not configured
	now  func() time.Time
}

// NewService creates the session service.
func NewService(repo *Repository, geo GeoResolver) *Service {
	return &Service{repo: repo, geo: geo, now: time.Now}
}

// StartInput is the identity captured at a successful gate login.
type StartInput struct {
	FullName  string
	Phone     string
	UserAgent string
	IP        string
}

// Start creates the session's access-log entry: one entry per login,
// phone stored masked, device derived from the user agent, geo
// best-effort. The returned entry carries the id embedded into the
// session token.
func (s *Service) Start(ctx context.Context, in StartInput) (model.AccessLogEntry, error) {
	entry := model.AccessLogEntry{
		ID:             uuid.NewString(),
		FullName:       in.FullName,
		Phone:          model.MaskPhone(in.Phone),
		Device:         ClassifyDevice(in.UserAgent),
		DeviceName:     DeviceName(in.UserAgent),
		IP:             in.IP,
		SessionStart:   s.now().UTC(),
		PagesVisited:   []string{},
		ArtworksViewed: []string{},
	}
	if s.geo != nil {
		entry.Country = s.geo.LookupCountry(in.IP)
		entry.City = s.geo.LookupCity(in.IP)
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		// The repository swallows storage failures; anything else is
		// still not worth failing a login over.
		return entry, err
	}
	return entry, nil
}

// Recorder accumulates one session's client-side events: visited
// pages, viewed artworks and the order-click flag. It is an explicit
// session-scoped object rather than hidden module state; the owner
// flushes it exactly once at session end.
type Recorder struct {
	mu          sync.Mutex
	pages       []string
	pageSeen    map[string]bool
	artworks    []string
	artworkSeen map[string]bool
	ordered     bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		pageSeen:    make(map[string]bool),
		artworkSeen: make(map[string]bool),
	}
}

// RecordPage notes a visited path. Duplicates are ignored; insertion
// order is preserved.
func (r *Recorder) RecordPage(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path == "" || r.pageSeen[path] {
		return
	}
	r.pageSeen[path] = true
	r.pages = append(r.pages, path)
}

// RecordArtwork notes a viewed artwork id. Duplicates are ignored.
func (r *Recorder) RecordArtwork(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" || r.artworkSeen[id] {
		return
	}
	r.artworkSeen[id] = true
	r.artworks = append(r.artworks, id)
}

// RecordOrderClick raises the one-way order flag.
func (r *Recorder) RecordOrderClick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ordered = true
}

// Flush returns the single end-of-session patch: the accumulated
// state plus sessionEnd.
func (r *Recorder) Flush(end time.Time) UpdatePatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	pages := append([]string{}, r.pages...)
	artworks := append([]string{}, r.artworks...)
	ordered := r.ordered
	return UpdatePatch{
		SessionEnd:     &end,
		PagesVisited:   pages,
		ArtworksViewed: artworks,
		OrderClicked:   &ordered,
	}
}
