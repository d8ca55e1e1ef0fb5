package handler

import (
	"context"
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("success creates access log entry", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/login", "", map[string]string{
			"fullName": "Ayşe Demir",
			"phone":    "+905551234567",
			"password": testGatePass,
			"locale":   "en",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[loginResponse](t, rec)
		if resp.Token == "" || resp.Locale != "en" {
			t.Errorf("response = %+v", resp)
		}

		entries, err := env.visits.ReadAll(context.Background())
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("access log entries = %d", len(entries))
		}
		if entries[0].Phone != "+905*****4567" {
			t.Errorf("phone stored unmasked: %q", entries[0].Phone)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/login", "", map[string]string{
			"fullName": "X", "phone": "Y", "password": "wrong",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/login", "", map[string]string{"password": testGatePass})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", rec.Code)
		}
		resp := decode[ErrorResponse](t, rec)
		if resp.Error.Details["fullName"] == "" || resp.Error.Details["phone"] == "" {
			t.Errorf("details = %v", resp.Error.Details)
		}
	})

	t.Run("unknown locale falls back to tr", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/login", "", map[string]string{
			"fullName": "X", "phone": "Y", "password": testGatePass, "locale": "de",
		})
		if resp := decode[loginResponse](t, rec); resp.Locale != "tr" {
			t.Errorf("locale = %q", resp.Locale)
		}
	})
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	token := env.adminLogin(t)
	if token == "" {
		t.Fatal("empty admin token")
	}

	// Admin token opens the admin surface.
	rec := env.do(t, "GET", "/api/admin/artworks", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("admin artworks status = %d", rec.Code)
	}

	// Gate token does not.
	gate := env.login(t, "tr")
	rec = env.do(t, "GET", "/api/admin/artworks", gate, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("gate token on admin surface = %d", rec.Code)
	}

	rec = env.do(t, "POST", "/api/admin/login", "", map[string]string{"password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong admin password = %d", rec.Code)
	}
}

func TestChangeAdminPassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)

	rec := env.do(t, "POST", "/api/admin/password", token, map[string]string{
		"currentPassword": testAdminPass,
		"newPassword":     "yeni-guclu-sifre",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	// The old password no longer works, the new one does.
	rec = env.do(t, "POST", "/api/admin/login", "", map[string]string{"password": testAdminPass})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("old password still accepted: %d", rec.Code)
	}
	rec = env.do(t, "POST", "/api/admin/login", "", map[string]string{"password": "yeni-guclu-sifre"})
	if rec.Code != http.StatusOK {
		t.Errorf("new password rejected: %d", rec.Code)
	}

	t.Run("wrong current password", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/password", token, map[string]string{
			"currentPassword": "wrong",
			"newPassword":     "baska-bir-sifre",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("short new password", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/admin/password", token, map[string]string{
			"currentPassword": "yeni-guclu-sifre",
			"newPassword":     "kisa",
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestVisitorSurfaceRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/artworks", "/api/categories"} {
		rec := env.do(t, "GET", path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token = %d", path, rec.Code)
		}
	}
}
