package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestVerifyCSRF(t *testing.T) {
	handler := VerifyCSRF(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest("POST", "/", nil)
	r.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok123"})
	r.Header.Set("X-CSRF-Token", "tok123")
	w := httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusOK {
		t.Errorf("matching token status = %d, want 200", w.Code)
	}

	r = httptest.NewRequest("POST", "/", nil)
	r.AddCookie(&http.Cookie{Name: "csrf_token", Value: "tok123"})
	r.Header.Set("X-CSRF-Token", "other")
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("mismatched token status = %d, want 403", w.Code)
	}

	r = httptest.NewRequest("POST", "/", nil)
	w = httptest.NewRecorder()
	handler(w, r, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("missing cookie status = %d, want 403", w.Code)
	}
}

func TestIssueCSRF(t *testing.T) {
	w := httptest.NewRecorder()
	IssueCSRF(w, httptest.NewRequest("GET", "/csrf", nil), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == "csrf_token" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("csrf_token cookie not set")
	}
}
