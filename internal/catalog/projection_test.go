package catalog

import (
	"testing"

	"github.com/seyhanart/galeri-go/internal/model"
)

func testOpts() ProjectOptions {
	return ProjectOptions{MediaBaseURL: "/uploads", USDDivisor: 30}
}

func sampleArtwork() model.Artwork {
	descTR := "mermer üzerine"
	descEN := "on marble"
	usd := 120.0
	return model.Artwork{
		ID:            "a1",
		Category:      "Stone",
		Filename:      "mermer-1.jpg",
		TitleTR:       "Mermer Kompozisyon",
		TitleEN:       "Marble Composition",
		DescriptionTR: &descTR,
		DescriptionEN: &descEN,
		PriceTRY:      9000,
		PriceUSD:      300,
		DimensionsCM:  "50×70 cm",
		DimensionsIN:  "19.7×27.6 in",
		PriceVariants: []model.PriceVariant{
			{Size: "small", PriceTRY: 3000, PriceUSD: &usd},
			{Size: "large", PriceTRY: 9000},
		},
		IsFeatured: true,
	}
}

func TestProject_Turkish(t *testing.T) {
	v := Project(sampleArtwork(), LocaleTR, testOpts())

	if v.Title != "Mermer Kompozisyon" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.Price != 9000 || v.Currency != "TL" {
		t.Errorf("price = %v %q", v.Price, v.Currency)
	}
	if v.Dimensions != "50×70 cm" {
		t.Errorf("Dimensions = %q", v.Dimensions)
	}
	if v.Description == nil || *v.Description != "mermer üzerine" {
		t.Error("wrong description")
	}
	if v.ImageURL != "/uploads/mermer-1.jpg" {
		t.Errorf("ImageURL = %q", v.ImageURL)
	}
	if v.MediaType != "image" {
		t.Errorf("MediaType = %q", v.MediaType)
	}
	// Turkish variants pass through unmodified.
	if len(v.PriceVariants) != 2 {
		t.Fatalf("variants = %d", len(v.PriceVariants))
	}
	if v.PriceVariants[1].PriceUSD != nil {
		t.Error("tr projection must not synthesize USD variant prices")
	}
}

func TestProject_English(t *testing.T) {
	v := Project(sampleArtwork(), LocaleEN, testOpts())

	if v.Title != "Marble Composition" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.Price != 300 || v.Currency != "$" {
		t.Errorf("price = %v %q", v.Price, v.Currency)
	}
	if v.Dimensions != "19.7×27.6 in (50×70 cm)" {
		t.Errorf("Dimensions = %q", v.Dimensions)
	}

	if len(v.PriceVariants) != 2 {
		t.Fatalf("variants = %d", len(v.PriceVariants))
	}
	// Explicit USD price survives untouched.
	if v.PriceVariants[0].PriceUSD == nil || *v.PriceVariants[0].PriceUSD != 120 {
		t.Errorf("explicit USD variant changed: %+v", v.PriceVariants[0])
	}
	// Missing USD price is synthesized as round(TRY/30).
	if v.PriceVariants[1].PriceUSD == nil || *v.PriceVariants[1].PriceUSD != 300 {
		t.Errorf("synthesized USD variant = %+v", v.PriceVariants[1])
	}
}

func TestProject_UnknownLocaleFallsBackToTurkish(t *testing.T) {
	v := Project(sampleArtwork(), "de", testOpts())
	if v.Currency != "TL" {
		t.Errorf("Currency = %q", v.Currency)
	}
}

func TestProject_IsTotalOnEmptyRecord(t *testing.T) {
	v := Project(model.Artwork{}, LocaleEN, testOpts())
	if v.Title != "" || v.Price != 0 || v.Dimensions != "" {
		t.Errorf("empty record should project to zero values: %+v", v)
	}
	if v.ImageURL != "" {
		t.Errorf("ImageURL = %q", v.ImageURL)
	}
}

func TestProject_ConfigurableDivisor(t *testing.T) {
	a := model.Artwork{PriceVariants: []model.PriceVariant{{Size: "m", PriceTRY: 1000}}}
	v := Project(a, LocaleEN, ProjectOptions{USDDivisor: 40})
	if v.PriceVariants[0].PriceUSD == nil || *v.PriceVariants[0].PriceUSD != 25 {
		t.Errorf("divisor 40: %+v", v.PriceVariants[0])
	}
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"clip.mp4", "video"},
		{"clip.WEBM", "video"},
		{"clip.mov", "video"},
		{"clip.ogg", "video"},
		{"work.jpg", "image"},
		{"work.png", "image"},
		{"https://cdn.example.com/v/clip.mp4", "video"},
		{"", "image"},
	}
	for _, tt := range tests {
		if got := MediaType(tt.in); got != tt.want {
			t.Errorf("MediaType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMediaURL(t *testing.T) {
	if got := MediaURL("https://cdn.example.com/a.jpg", "/uploads"); got != "https://cdn.example.com/a.jpg" {
		t.Errorf("absolute URL must pass through, got %q", got)
	}
	if got := MediaURL("a.jpg", "/uploads/"); got != "/uploads/a.jpg" {
		t.Errorf("got %q", got)
	}
	if got := MediaURL("/a.jpg", "/uploads"); got != "/uploads/a.jpg" {
		t.Errorf("got %q", got)
	}
}
