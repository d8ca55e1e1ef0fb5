// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
	"time"
)

// Device classification buckets.
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// AccessLogEntry records one visitor session. Created exactly once at
// login, patched once (logically) at session end with the client's
// accumulated state.
type AccessLogEntry struct {
	ID             string     `json:"id"`
	FullName       string     `json:"fullName"`
	Phone          string     `json:"phone"` // stored masked
	Device         string     `json:"device"`
	DeviceName     string     `json:"deviceName,omitempty"`
	IP             string     `json:"ip"`
	Country        string     `json:"country"`
	City           string     `json:"city,omitempty"`
	SessionStart   time.Time  `json:"sessionStart"`
	SessionEnd     *time.Time `json:"sessionEnd"`
	PagesVisited   []string   `json:"pagesVisited"`
	ArtworksViewed []string   `json:"artworksViewed"`
	OrderClicked   bool       `json:"orderClicked"`
}

// RawAccessLogEntry is the permissive on-disk shape, tolerating the
// bare login records written before session tracking existed.
type RawAccessLogEntry struct {
	AccessLogEntry

	LegacyName      string `json:"name,omitempty"`
	LegacyTimestamp string `json:"timestamp,omitempty"`
}

// DecodeAccessLog normalizes a raw entry. Modern entries (id and
// sessionStart present) pass through with nil slices replaced by empty
// ones. Anything else is treated as a legacy bare login record and
// converted to a degraded-but-valid entry keyed by its position in the
// document.
func DecodeAccessLog(raw RawAccessLogEntry, index int) AccessLogEntry {
	e := raw.AccessLogEntry

	if e.ID != "" && !e.SessionStart.IsZero() {
		if e.Device == "" {
			e.Device = DeviceUnknown
		}
		if e.PagesVisited == nil {
			e.PagesVisited = []string{}
		}
		if e.ArtworksViewed == nil {
			e.ArtworksViewed = []string{}
		}
		return e
	}

	legacy := AccessLogEntry{
		ID:             "legacy-" + strconv.Itoa(index),
		FullName:       e.FullName,
		Device:         DeviceUnknown,
		IP:             e.IP,
		Country:        e.Country,
		PagesVisited:   []string{},
		ArtworksViewed: []string{},
	}
	if legacy.FullName == "" {
		legacy.FullName = raw.LegacyName
	}
	if e.Phone != "" {
		legacy.Phone = MaskPhone(e.Phone)
	} else {
		legacy.Phone = "****"
	}
	if !e.SessionStart.IsZero() {
		legacy.SessionStart = e.SessionStart
	} else if raw.LegacyTimestamp != "" {
		if ts, err := time.Parse(time.RFC3339, raw.LegacyTimestamp); err == nil {
			legacy.SessionStart = ts
		}
	}
	return legacy
}

// MaskPhone hides the middle of a phone number, keeping the first four
// and last four characters visible. Already-masked values stay stable,
// so masking is idempotent.
func MaskPhone(phone string) string {
	if len(phone) <= 8 {
		return phone
	}
	return phone[:4] + strings.Repeat("*", len(phone)-8) + phone[len(phone)-4:]
}
