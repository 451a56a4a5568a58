package sales

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"vendora/utils"

	"github.com/phpdave11/gofpdf"
)

// writeReportPDF renders the report lines into an A4 PDF and sends it
// as an attachment.
func writeReportPDF(w http.ResponseWriter, title string, p reportParams, lines []string, filename string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(190, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(190, 8, fmt.Sprintf("Range: %s to %s",
		p.Start.Format("2006-01-02"), p.End.Format("2006-01-02")))
	pdf.Ln(10)

	if len(lines) == 0 {
		pdf.Cell(190, 8, "No sales recorded in this range.")
		pdf.Ln(8)
	}
	for _, line := range lines {
		pdf.Cell(190, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("report pdf output error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
