package app

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WriteSummaryPDF renders a minimal one-page-per-document summary of the
// tallies and verdicts. This is intentionally simple; the console report is
// the primary output.
func WriteSummaryPDF(results []*Result, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)

	for _, res := range results {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, res.Document, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)

		t := res.Tally
		lines := []string{
			fmt.Sprintf("Venue: %s (limit %d words)", res.Venue, res.Limit),
			fmt.Sprintf("Abstract: %d characters", res.AbstractChars),
			fmt.Sprintf("Main text: %d words", t.MainText),
			fmt.Sprintf("Equations: %d words", t.Equations),
			fmt.Sprintf("Figures: %d words", t.Figures),
			fmt.Sprintf("Tables: %d words", t.Tables),
			fmt.Sprintf("Total: %d words", t.Total()),
		}
		diff := t.Total() - res.Limit
		if diff > 0 {
			lines = append(lines, fmt.Sprintf("OVER the limit by %d words", diff))
		} else {
			lines = append(lines, fmt.Sprintf("UNDER the limit by %d words", -diff))
		}
		for _, ln := range lines {
			pdf.CellFormat(0, 6, ln, "", 1, "L", false, 0, "")
		}
	}

	return pdf.OutputFileAndClose(outPath)
}
