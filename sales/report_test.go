package sales

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestDaySpan(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int64
	}{
		{"same instant", base, 1},
		{"partial day rounds up", base.Add(6 * time.Hour), 1},
		{"exactly one day", base.Add(24 * time.Hour), 1},
		{"one day and a bit", base.Add(25 * time.Hour), 2},
		{"ten days", base.Add(240 * time.Hour), 10},
	}
	for _, c := range cases {
		if got := DaySpan(base, c.end); got != c.want {
			t.Errorf("%s: DaySpan = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestParseReportParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/reports?startDate=2025-03-01&endDate=2025-03-10", nil)
	p, err := parseReportParams(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Limit != defaultTopLimit {
		t.Errorf("default limit = %d, want %d", p.Limit, defaultTopLimit)
	}
	if !p.End.After(p.Start) {
		t.Error("end should be after start")
	}

	r = httptest.NewRequest("GET", "/reports?startDate=2025-03-01&endDate=2025-03-10&limit=3", nil)
	p, _ = parseReportParams(r)
	if p.Limit != 3 {
		t.Errorf("explicit limit = %d, want 3", p.Limit)
	}
}

func TestParseReportParamsRejectsBadDates(t *testing.T) {
	for _, url := range []string{
		"/reports",
		"/reports?startDate=2025-03-01",
		"/reports?startDate=bogus&endDate=2025-03-10",
		"/reports?startDate=2025-03-10&endDate=2025-03-01",
	} {
		r := httptest.NewRequest("GET", url, nil)
		if _, err := parseReportParams(r); err == nil {
			t.Errorf("%s: expected an error", url)
		}
	}
}
