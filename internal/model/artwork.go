// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the stored record shapes for the gallery and
// the versioned decoders that upgrade legacy single-locale documents
// into the canonical dual-locale form.
package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PriceVariant is an optional per-size price override. When a record
// carries variants they take display precedence over the single
// TRY/USD pair, but both coexist in storage.
type PriceVariant struct {
	Size     string   `json:"size"`
	PriceTRY float64  `json:"priceTRY"`
	PriceUSD *float64 `json:"priceUSD,omitempty"`
}

// Artwork is the stored dual-locale catalog record. IDs are opaque,
// globally unique and immutable after creation.
type Artwork struct {
	ID            string         `json:"id"`
	Category      string         `json:"category"`
	Filename      string         `json:"filename"`
	TitleTR       string         `json:"titleTR"`
	TitleEN       string         `json:"titleEN"`
	DescriptionTR *string        `json:"descriptionTR"`
	DescriptionEN *string        `json:"descriptionEN"`
	PriceTRY      float64        `json:"priceTRY"`
	PriceUSD      float64        `json:"priceUSD"`
	DimensionsCM  string         `json:"dimensionsCM"`
	DimensionsIN  string         `json:"dimensionsIN"`
	PriceVariants []PriceVariant `json:"priceVariants,omitempty"`
	IsFeatured    bool           `json:"isFeatured"`
	Tags          []string       `json:"tags,omitempty"`
}

// IsExternalMedia reports whether the filename points at externally
// hosted media rather than a local upload.
func (a Artwork) IsExternalMedia() bool {
	return strings.HasPrefix(a.Filename, "http://") || strings.HasPrefix(a.Filename, "https://")
}

// RawArtwork is the permissive on-disk shape: the canonical fields
// plus the pre-dual-locale legacy fields some old documents still
// carry.
type RawArtwork struct {
	Artwork

	LegacyTitle       string  `json:"title,omitempty"`
	LegacyDescription *string `json:"description,omitempty"`
	LegacyPrice       float64 `json:"price,omitempty"`
	LegacyDimensions  string  `json:"dimensions,omitempty"`
}

// DecodeArtwork upgrades a raw record to the canonical shape in
// memory. The persisted document is left untouched until the next
// explicit write. usdDivisor converts a legacy TRY-only price into the
// USD field.
func DecodeArtwork(raw RawArtwork, usdDivisor float64) Artwork {
	a := raw.Artwork

	if a.TitleTR == "" && a.TitleEN == "" && raw.LegacyTitle != "" {
		a.TitleTR = raw.LegacyTitle
		a.TitleEN = raw.LegacyTitle
	}
	if a.DescriptionTR == nil && a.DescriptionEN == nil && raw.LegacyDescription != nil {
		a.DescriptionTR = raw.LegacyDescription
		a.DescriptionEN = raw.LegacyDescription
	}
	if a.PriceTRY == 0 && a.PriceUSD == 0 && raw.LegacyPrice > 0 {
		a.PriceTRY = raw.LegacyPrice
		if usdDivisor > 0 {
			a.PriceUSD = math.Round(raw.LegacyPrice / usdDivisor)
		}
	}
	if a.DimensionsCM == "" && raw.LegacyDimensions != "" {
		a.DimensionsCM = raw.LegacyDimensions
	}
	if a.DimensionsIN == "" && a.DimensionsCM != "" {
		a.DimensionsIN = DimensionsToInches(a.DimensionsCM)
	}

	return a
}

// EncodeArtwork wraps a canonical record for persistence. Legacy
// fields are dropped on write, which is how old documents eventually
// converge on the modern shape.
func EncodeArtwork(a Artwork) RawArtwork {
	return RawArtwork{Artwork: a}
}

var dimensionNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// DimensionsToInches converts a centimeter dimension string like
// "50×70 cm" to its inch equivalent ("19.7×27.6 in"). Free text is
// tolerated: every number found is converted in place and a trailing
// "cm" token becomes "in". Strings with no numbers yield "".
func DimensionsToInches(cm string) string {
	if !dimensionNumber.MatchString(cm) {
		return ""
	}

	converted := dimensionNumber.ReplaceAllStringFunc(cm, func(tok string) string {
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", "."), 64)
		if err != nil {
			return tok
		}
		return strconv.FormatFloat(math.Round(v/2.54*10)/10, 'f', -1, 64)
	})

	converted = strings.ReplaceAll(converted, "cm", "in")
	return converted
}
