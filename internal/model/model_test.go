package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecodeArtwork_ModernPassesThrough(t *testing.T) {
	desc := "soyut kompozisyon"
	raw := RawArtwork{Artwork: Artwork{
		ID:            "a1",
		Category:      "Stone",
		Filename:      "mermer-1.jpg",
		TitleTR:       "Mermer",
		TitleEN:       "Marble",
		DescriptionTR: &desc,
		PriceTRY:      9000,
		PriceUSD:      300,
		DimensionsCM:  "50×70 cm",
		DimensionsIN:  "19.7×27.6 in",
	}}

	got := DecodeArtwork(raw, 30)
	if got.TitleTR != "Mermer" || got.TitleEN != "Marble" {
		t.Errorf("titles changed: %+v", got)
	}
	if got.PriceTRY != 9000 || got.PriceUSD != 300 {
		t.Errorf("prices changed: %+v", got)
	}
}

func TestDecodeArtwork_LegacyUpgrade(t *testing.T) {
	desc := "old single-locale description"
	raw := RawArtwork{
		Artwork: Artwork{
			ID:       "a2",
			Category: "Canvas",
			Filename: "tuval.jpg",
		},
		LegacyTitle:       "Eski Tuval",
		LegacyDescription: &desc,
		LegacyPrice:       3000,
		LegacyDimensions:  "40×60 cm",
	}

	got := DecodeArtwork(raw, 30)
	if got.TitleTR != "Eski Tuval" || got.TitleEN != "Eski Tuval" {
		t.Errorf("legacy title not applied to both locales: %+v", got)
	}
	if got.DescriptionTR == nil || *got.DescriptionTR != desc {
		t.Error("legacy description not applied")
	}
	if got.PriceTRY != 3000 {
		t.Errorf("PriceTRY = %v, want 3000", got.PriceTRY)
	}
	if got.PriceUSD != 100 {
		t.Errorf("PriceUSD = %v, want 100 (3000/30)", got.PriceUSD)
	}
	if got.DimensionsCM != "40×60 cm" {
		t.Errorf("DimensionsCM = %q", got.DimensionsCM)
	}
	if got.DimensionsIN != "15.7×23.6 in" {
		t.Errorf("DimensionsIN = %q, want 15.7×23.6 in", got.DimensionsIN)
	}
}

func TestDecodeArtwork_JSONRoundTrip(t *testing.T) {
	// A legacy document as it would sit on disk.
	doc := []byte(`[{"id":"x","category":"Stone","filename":"x.jpg","title":"Taş","price":600,"dimensions":"10×20 cm"}]`)

	var raws []RawArtwork
	if err := json.Unmarshal(doc, &raws); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := DecodeArtwork(raws[0], 30)
	if got.TitleTR != "Taş" || got.PriceUSD != 20 {
		t.Errorf("decode = %+v", got)
	}
}

func TestDimensionsToInches(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"50×70 cm", "19.7×27.6 in"},
		{"40×60 cm", "15.7×23.6 in"},
		{"100 cm", "39.4 in"},
		{"30,5×40 cm", "12×15.7 in"},
		{"çap 25 cm", "çap 9.8 in"},
		{"serbest ölçü", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DimensionsToInches(tt.in); got != tt.want {
			t.Errorf("DimensionsToInches(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"05321234567", "0532***4567"},
		{"+905321234567", "+905******4567"},
		{"1234", "1234"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MaskPhone(tt.in); got != tt.want {
			t.Errorf("MaskPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	// Idempotent: masking a masked value does not change it.
	once := MaskPhone("05321234567")
	if MaskPhone(once) != once {
		t.Errorf("masking is not idempotent: %q -> %q", once, MaskPhone(once))
	}
}

func TestDecodeAccessLog_Modern(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw := RawAccessLogEntry{AccessLogEntry: AccessLogEntry{
		ID:           "e1",
		FullName:     "Ayşe Demir",
		Phone:        "0532***4567",
		SessionStart: start,
	}}

	got := DecodeAccessLog(raw, 0)
	if got.ID != "e1" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.Device != DeviceUnknown {
		t.Errorf("empty device should normalize to unknown, got %q", got.Device)
	}
	if got.PagesVisited == nil || got.ArtworksViewed == nil {
		t.Error("nil slices should normalize to empty")
	}
}

func TestDecodeAccessLog_Legacy(t *testing.T) {
	raw := RawAccessLogEntry{
		AccessLogEntry:  AccessLogEntry{Phone: "05321234567"},
		LegacyName:      "Mehmet",
		LegacyTimestamp: "2023-06-01T09:30:00Z",
	}

	got := DecodeAccessLog(raw, 3)
	if got.ID != "legacy-3" {
		t.Errorf("ID = %q, want legacy-3", got.ID)
	}
	if got.FullName != "Mehmet" {
		t.Errorf("FullName = %q", got.FullName)
	}
	if got.Phone != "0532***4567" {
		t.Errorf("Phone = %q, want masked", got.Phone)
	}
	if got.Device != DeviceUnknown {
		t.Errorf("Device = %q", got.Device)
	}
	if got.SessionStart.IsZero() {
		t.Error("legacy timestamp not parsed")
	}
	if len(got.PagesVisited) != 0 || len(got.ArtworksViewed) != 0 || got.OrderClicked {
		t.Errorf("legacy entry should have empty event state: %+v", got)
	}
}
