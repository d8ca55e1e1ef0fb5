// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package visitlog

import (
	"sort"

	"github.com/seyhanart/galeri-go/internal/model"
)

// TopArtworksCount is how many most-viewed artworks the report keeps.
const TopArtworksCount = 10

// Bucket is one slice of a distribution.
type Bucket struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Report is the full analytics fold over the access-log collection.
// Every value is recomputed from scratch on each query.
type Report struct {
	TotalVisits       int      `json:"totalVisits"`
	AvgSessionSeconds float64  `json:"avgSessionSeconds"`
	Devices           []Bucket `json:"devices"`
	Countries         []Bucket `json:"countries"`
	TopArtworks       []Bucket `json:"topArtworks"`
	OrderClicks       int      `json:"orderClicks"`
	OrderClickRate    float64  `json:"orderClickRate"`
}

// Aggregate folds the whole collection into a report. Sessions without
// an end timestamp are excluded from the duration average, not counted
// as zero. Missing countries bucket as "Unknown".
func Aggregate(entries []model.AccessLogEntry) Report {
	report := Report{TotalVisits: len(entries)}
	if len(entries) == 0 {
		return report
	}

	var durationSum float64
	ended := 0
	devices := make(map[string]int)
	countries := make(map[string]int)
	artworks := make(map[string]int)

	for _, e := range entries {
		if e.SessionEnd != nil && !e.SessionStart.IsZero() {
			durationSum += e.SessionEnd.Sub(e.SessionStart).Seconds()
			ended++
		}

		device := e.Device
		if device == "" {
			device = model.DeviceUnknown
		}
		devices[device]++

		country := e.Country
		if country == "" {
			country = "Unknown"
		}
		countries[country]++

		for _, id := range e.ArtworksViewed {
			artworks[id]++
		}

		if e.OrderClicked {
			report.OrderClicks++
		}
	}

	if ended > 0 {
		report.AvgSessionSeconds = durationSum / float64(ended)
	}
	report.OrderClickRate = float64(report.OrderClicks) / float64(len(entries))
	report.Devices = toBuckets(devices, len(entries), 0)
	report.Countries = toBuckets(countries, len(entries), 0)
	report.TopArtworks = toBuckets(artworks, len(entries), TopArtworksCount)
	return report
}

// toBuckets converts a count map to a distribution sorted by count
// descending, name ascending on ties. limit 0 keeps everything.
func toBuckets(counts map[string]int, total, limit int) []Bucket {
	buckets := make([]Bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, Bucket{
			Name:    name,
			Count:   count,
			Percent: float64(count) / float64(total) * 100,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}
