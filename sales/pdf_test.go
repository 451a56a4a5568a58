package sales

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestWriteReportPDF(t *testing.T) {
	p := reportParams{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	w := httptest.NewRecorder()
	writeReportPDF(w, "Test Report", p, []string{"line one", "line two"}, "test-report")

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "test-report.pdf") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if body := w.Body.Bytes(); len(body) == 0 || !strings.HasPrefix(string(body), "%PDF") {
		t.Error("body is not a rendered PDF")
	}
}
