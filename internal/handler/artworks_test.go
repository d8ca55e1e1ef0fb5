package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/seyhanart/galeri-go/internal/catalog"
	"github.com/seyhanart/galeri-go/internal/model"
)

func seedArtworks(t *testing.T, env *testEnv, n int) {
	t.Helper()
	batch := make([]model.Artwork, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, model.Artwork{
			ID:           fmt.Sprintf("a%d", i),
			Category:     "Stone",
			Filename:     fmt.Sprintf("eser-%d.jpg", i),
			TitleTR:      fmt.Sprintf("Eser %d", i),
			TitleEN:      fmt.Sprintf("Work %d", i),
			PriceTRY:     3000,
			DimensionsCM: "50×70 cm",
		})
	}
	if err := env.artworks.AppendAll(context.Background(), batch); err != nil {
		t.Fatalf("seeding artworks: %v", err)
	}
}

func TestListArtworks_Paginated(t *testing.T) {
	env := newTestEnv(t)
	seedArtworks(t, env, 7)
	token := env.login(t, "tr")

	rec := env.do(t, "GET", "/api/artworks?seed=sergi&page=1&limit=3", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[listEnvelope](t, rec)
	if len(resp.Items) != 3 || resp.Total != 7 || !resp.HasMore {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Seed != "sergi" || resp.Page != 1 || resp.Limit != 3 {
		t.Errorf("echo fields = %+v", resp)
	}

	// Same seed, same order.
	again := decode[listEnvelope](t, env.do(t, "GET", "/api/artworks?seed=sergi&page=1&limit=3", token, nil))
	for i := range resp.Items {
		if resp.Items[i].ID != again.Items[i].ID {
			t.Fatal("shuffle not deterministic across requests")
		}
	}

	// Last page has no more.
	last := decode[listEnvelope](t, env.do(t, "GET", "/api/artworks?seed=sergi&page=3&limit=3", token, nil))
	if len(last.Items) != 1 || last.HasMore {
		t.Errorf("last page = %+v", last)
	}
}

func TestListArtworks_FullDump(t *testing.T) {
	env := newTestEnv(t)
	seedArtworks(t, env, 4)
	token := env.login(t, "tr")

	rec := env.do(t, "GET", "/api/artworks?seed=sergi", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Full-dump mode is a bare array, not an envelope.
	views := decode[[]catalog.View](t, rec)
	if len(views) != 4 {
		t.Errorf("full dump = %d items", len(views))
	}
}

func TestListArtworks_LocaleProjection(t *testing.T) {
	env := newTestEnv(t)
	seedArtworks(t, env, 1)

	trToken := env.login(t, "tr")
	views := decode[[]catalog.View](t, env.do(t, "GET", "/api/artworks", trToken, nil))
	if views[0].Title != "Eser 0" || views[0].Currency != "TL" || views[0].Price != 3000 {
		t.Errorf("tr view = %+v", views[0])
	}

	// Token locale drives projection without a query parameter.
	enToken := env.login(t, "en")
	views = decode[[]catalog.View](t, env.do(t, "GET", "/api/artworks", enToken, nil))
	if views[0].Title != "Work 0" || views[0].Currency != "$" || views[0].Price != 100 {
		t.Errorf("en view = %+v", views[0])
	}

	// Explicit query parameter wins over the token locale.
	views = decode[[]catalog.View](t, env.do(t, "GET", "/api/artworks?locale=tr", enToken, nil))
	if views[0].Currency != "TL" {
		t.Errorf("query locale override: %+v", views[0])
	}
}

func TestGetArtwork(t *testing.T) {
	env := newTestEnv(t)
	seedArtworks(t, env, 2)
	token := env.login(t, "tr")

	rec := env.do(t, "GET", "/api/artworks/a1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if view := decode[catalog.View](t, rec); view.ID != "a1" {
		t.Errorf("view = %+v", view)
	}

	rec = env.do(t, "GET", "/api/artworks/missing", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rec.Code)
	}
}

func TestAdminArtworkCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)

	t.Run("create normalizes the record", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/artworks", token, map[string]any{
			"category":      "Stone",
			"filename":      "Taş Heykel.JPG",
			"titleTR":       "Taş Heykel",
			"descriptionTR": `<p>El yapımı</p><script>alert(1)</script>`,
			"priceTRY":      9000,
			"dimensionsCM":  "40×60 cm",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		created := decode[model.Artwork](t, rec)
		if created.ID == "" {
			t.Error("id not generated")
		}
		if created.Filename != "tas-heykel.jpg" {
			t.Errorf("filename = %q", created.Filename)
		}
		if created.DimensionsIN != "15.7×23.6 in" {
			t.Errorf("dimensionsIN = %q", created.DimensionsIN)
		}
		if created.DescriptionTR == nil || *created.DescriptionTR != "<p>El yapımı</p>" {
			t.Errorf("description not sanitized: %v", created.DescriptionTR)
		}
	})

	t.Run("create validation", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/artworks", token, map[string]any{"titleTR": "Adsız"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("patch recomputes inches and 404s on unknown id", func(t *testing.T) {
		list := decode[[]model.Artwork](t, env.do(t, "GET", "/api/admin/artworks", token, nil))
		id := list[0].ID

		rec := env.do(t, "PATCH", "/api/admin/artworks/"+id, token, map[string]any{"dimensionsCM": "50×70 cm"})
		if rec.Code != http.StatusOK {
			t.Fatalf("patch status = %d", rec.Code)
		}
		list = decode[[]model.Artwork](t, env.do(t, "GET", "/api/admin/artworks", token, nil))
		if list[0].DimensionsIN != "19.7×27.6 in" {
			t.Errorf("dimensionsIN = %q", list[0].DimensionsIN)
		}

		rec = env.do(t, "PATCH", "/api/admin/artworks/missing", token, map[string]any{"titleTR": "x"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("unknown id status = %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		list := decode[[]model.Artwork](t, env.do(t, "GET", "/api/admin/artworks", token, nil))
		id := list[0].ID

		rec := env.do(t, "DELETE", "/api/admin/artworks/"+id, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete status = %d", rec.Code)
		}
		rec = env.do(t, "DELETE", "/api/admin/artworks/"+id, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("double delete status = %d", rec.Code)
		}
	})
}

func TestAdminBulkOperations(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)

	rec := env.do(t, "POST", "/api/admin/artworks/bulk", token, map[string]any{
		"items": []map[string]any{
			{"category": "Canvas", "filename": "bir.jpg", "titleTR": "Bir"},
			{"category": "Canvas", "filename": "iki.jpg", "titleTR": "İki"},
			{"category": "Wood", "filename": "uc.jpg", "titleTR": "Üç"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("bulk create status = %d: %s", rec.Code, rec.Body.String())
	}

	list := decode[[]model.Artwork](t, env.do(t, "GET", "/api/admin/artworks", token, nil))
	if len(list) != 3 {
		t.Fatalf("catalog size = %d", len(list))
	}

	rec = env.do(t, "PATCH", "/api/admin/artworks", token, map[string]any{
		"ids":    []string{list[0].ID, list[1].ID},
		"fields": map[string]any{"isFeatured": true},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk patch status = %d", rec.Code)
	}
	if resp := decode[map[string]int](t, rec); resp["matched"] != 2 {
		t.Errorf("matched = %d", resp["matched"])
	}
}
