package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/seyhanart/galeri-go/internal/model"
)

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminLogin(t)

	rec := env.do(t, "POST", "/api/admin/categories", admin, model.Category{Name: "Stone", Color: "#8a7f6d", Order: 2})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	rec = env.do(t, "POST", "/api/admin/categories", admin, model.Category{Name: "Canvas", Order: 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/categories", admin, model.Category{Name: "Stone"})
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("list with counts sorted by order", func(t *testing.T) {
		seedArtworks(t, env, 2) // both in Stone

		token := env.login(t, "tr")
		rec := env.do(t, "GET", "/api/categories", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		views := decode[[]categoryView](t, rec)
		if len(views) != 2 {
			t.Fatalf("categories = %d", len(views))
		}
		if views[0].Name != "Canvas" || views[1].Name != "Stone" {
			t.Errorf("order: %+v", views)
		}
		if views[1].ArtworkCount != 2 || views[0].ArtworkCount != 0 {
			t.Errorf("counts: %+v", views)
		}
	})

	t.Run("update keeps name immutable", func(t *testing.T) {
		rec := env.do(t, "PATCH", "/api/admin/categories/Stone", admin, model.Category{Name: "Renamed", Color: "#fff"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		token := env.login(t, "tr")
		views := decode[[]categoryView](t, env.do(t, "GET", "/api/categories", token, nil))
		for _, v := range views {
			if v.Name == "Renamed" {
				t.Error("name was renamed through update")
			}
			if v.Name == "Stone" && v.Color != "#fff" {
				t.Errorf("color not updated: %+v", v)
			}
		}
	})

	t.Run("delete requires existing reassign target", func(t *testing.T) {
		rec := env.do(t, "DELETE", "/api/admin/categories/Stone", admin, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("missing reassignTo status = %d", rec.Code)
		}

		rec = env.do(t, "DELETE", "/api/admin/categories/Stone?reassignTo=Nope", admin, nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("unknown target status = %d", rec.Code)
		}
	})

	t.Run("delete reassigns artworks", func(t *testing.T) {
		rec := env.do(t, "DELETE", "/api/admin/categories/Stone?reassignTo=Canvas", admin, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		artworks, err := env.artworks.ReadAll(context.Background())
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		for _, a := range artworks {
			if a.Category == "Stone" {
				t.Errorf("%s still references deleted category", a.ID)
			}
		}

		token := env.login(t, "tr")
		views := decode[[]categoryView](t, env.do(t, "GET", "/api/categories", token, nil))
		if len(views) != 1 || views[0].Name != "Canvas" || views[0].ArtworkCount != 2 {
			t.Errorf("after delete: %+v", views)
		}
	})
}
