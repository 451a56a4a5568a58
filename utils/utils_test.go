package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/items", nil)
	skip, limit := ParsePagination(r, 20, 50)
	if skip != 0 || limit != 20 {
		t.Errorf("defaults: skip=%d limit=%d, want 0/20", skip, limit)
	}

	r = httptest.NewRequest("GET", "/items?page=3&limit=10", nil)
	skip, limit = ParsePagination(r, 20, 50)
	if skip != 20 || limit != 10 {
		t.Errorf("page 3 limit 10: skip=%d limit=%d, want 20/10", skip, limit)
	}

	r = httptest.NewRequest("GET", "/items?limit=500", nil)
	_, limit = ParsePagination(r, 20, 50)
	if limit != 50 {
		t.Errorf("capped limit=%d, want 50", limit)
	}

	r = httptest.NewRequest("GET", "/items?page=-1&limit=-2", nil)
	skip, limit = ParsePagination(r, 20, 50)
	if skip != 0 || limit != 20 {
		t.Errorf("negative params: skip=%d limit=%d, want 0/20", skip, limit)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"my file (1).png", "my_file__1_.png"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestGetUUID(t *testing.T) {
	a := GetUUID()
	b := GetUUID()
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("GetUUID returned %q: %v", a, err)
	}
	if a == b {
		t.Error("two generated ids should differ")
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(16)
	b := GenerateRandomString(16)
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("lengths: %d, %d", len(a), len(b))
	}
	if a == b {
		t.Error("two generated strings should differ")
	}
}
