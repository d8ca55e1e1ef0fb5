// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"math"
	"path"
	"strings"

	"github.com/seyhanart/galeri-go/internal/model"
)

// Supported gallery locales.
const (
	LocaleTR = "tr"
	LocaleEN = "en"
)

// DefaultUSDDivisor is the fallback TRY→USD divisor applied when a
// price variant has no explicit USD price. A fixed approximation, not
// a live exchange rate; override via GALERI_USD_FALLBACK_DIVISOR.
const DefaultUSDDivisor = 30

// videoExtensions maps file extensions to the "video" media type;
// everything else renders as an image.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".ogg":  true,
}

// ProjectOptions carries the deployment-level projection inputs.
type ProjectOptions struct {
	// MediaBaseURL prefixes relative filenames (e.g. "/uploads").
	MediaBaseURL string

	// USDDivisor converts variant TRY prices lacking a USD price.
	USDDivisor float64
}

// PriceVariantView is a locale-projected price variant.
type PriceVariantView struct {
	Size     string   `json:"size"`
	PriceTRY float64  `json:"priceTRY"`
	PriceUSD *float64 `json:"priceUSD,omitempty"`
}

// View is the single-locale artwork projection served to visitors.
type View struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Category      string             `json:"category"`
	ImageURL      string             `json:"imageUrl"`
	MediaType     string             `json:"mediaType"`
	Description   *string            `json:"description"`
	Dimensions    string             `json:"dimensions"`
	Price         float64            `json:"price"`
	Currency      string             `json:"currency"`
	PriceVariants []PriceVariantView `json:"priceVariants,omitempty"`
	IsFeatured    bool               `json:"isFeatured"`
}

// Project maps a stored dual-locale record to the requested locale.
// It is total: missing fields degrade to zero values, never an error.
// Any locale other than "en" projects as Turkish.
func Project(a model.Artwork, locale string, opts ProjectOptions) View {
	divisor := opts.USDDivisor
	if divisor <= 0 {
		divisor = DefaultUSDDivisor
	}

	v := View{
		ID:         a.ID,
		Category:   a.Category,
		ImageURL:   MediaURL(a.Filename, opts.MediaBaseURL),
		MediaType:  MediaType(a.Filename),
		IsFeatured: a.IsFeatured,
	}

	if locale == LocaleEN {
		v.Title = a.TitleEN
		v.Description = a.DescriptionEN
		v.Price = a.PriceUSD
		v.Currency = "$"
		v.Dimensions = englishDimensions(a)
		v.PriceVariants = englishVariants(a.PriceVariants, divisor)
		return v
	}

	v.Title = a.TitleTR
	v.Description = a.DescriptionTR
	v.Price = a.PriceTRY
	v.Currency = "TL"
	v.Dimensions = a.DimensionsCM
	v.PriceVariants = turkishVariants(a.PriceVariants)
	return v
}

// englishDimensions renders the composite "IN (CM)" form, degrading
// to whichever side exists.
func englishDimensions(a model.Artwork) string {
	switch {
	case a.DimensionsIN != "" && a.DimensionsCM != "":
		return a.DimensionsIN + " (" + a.DimensionsCM + ")"
	case a.DimensionsIN != "":
		return a.DimensionsIN
	default:
		return a.DimensionsCM
	}
}

func turkishVariants(variants []model.PriceVariant) []PriceVariantView {
	if len(variants) == 0 {
		return nil
	}
	out := make([]PriceVariantView, len(variants))
	for i, pv := range variants {
		out[i] = PriceVariantView{Size: pv.Size, PriceTRY: pv.PriceTRY, PriceUSD: pv.PriceUSD}
	}
	return out
}

// englishVariants keeps an explicit USD price when present and
// otherwise synthesizes one from the TRY price.
func englishVariants(variants []model.PriceVariant, divisor float64) []PriceVariantView {
	if len(variants) == 0 {
		return nil
	}
	out := make([]PriceVariantView, len(variants))
	for i, pv := range variants {
		usd := pv.PriceUSD
		if usd == nil {
			derived := math.Round(pv.PriceTRY / divisor)
			usd = &derived
		}
		out[i] = PriceVariantView{Size: pv.Size, PriceTRY: pv.PriceTRY, PriceUSD: usd}
	}
	return out
}

// MediaType derives the media kind from the file extension.
func MediaType(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if videoExtensions[ext] {
		return "video"
	}
	return "image"
}

// MediaURL resolves a stored filename to a servable URL: absolute
// URLs pass through, relative names get the configured base path.
func MediaURL(filename, base string) string {
	if strings.HasPrefix(filename, "http://") || strings.HasPrefix(filename, "https://") {
		return filename
	}
	if filename == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(filename, "/")
}
