package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("plain date: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 3 || d.Day() != 15 {
		t.Fatalf("parsed %v", d)
	}

	if _, err := ParseDate("2026-03-15T10:30:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Fatal("slash format accepted")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:4242"
	if ip := ClientIP(r); ip != "10.0.0.1" {
		t.Fatalf("remote addr ip = %q", ip)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if ip := ClientIP(r); ip != "203.0.113.7" {
		t.Fatalf("forwarded ip = %q", ip)
	}
}

func TestDecodeValid(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"required,oneof=admin manager employee"`
	}

	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","role":"admin"}`))
		var p payload
		if !DecodeValid(w, r, &p) {
			t.Fatalf("valid payload rejected: %s", w.Body.String())
		}
		if p.Email != "a@b.com" {
			t.Fatalf("decoded %+v", p)
		}
	})

	t.Run("field errors use json names", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","role":"boss"}`))
		var p payload
		if DecodeValid(w, r, &p) {
			t.Fatal("invalid payload accepted")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}

		var body struct {
			Errors map[string][]string `json:"errors"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(body.Errors["email"]) == 0 {
			t.Fatalf("no error for email: %v", body.Errors)
		}
		if len(body.Errors["role"]) == 0 {
			t.Fatalf("no error for role: %v", body.Errors)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var p payload
		if DecodeValid(w, r, &p) {
			t.Fatal("malformed body accepted")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "message") {
			t.Fatalf("body = %s", w.Body.String())
		}
	})
}
