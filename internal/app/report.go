package app

import (
	"io"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jlammi/texlength/internal/venue"
)

// Report writes the per-document diagnostics, tally, and verdict to w.
func Report(w io.Writer, res *Result) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "== %s (venue %s)\n", res.Document, res.Venue)
	p.Fprintf(w, "Abstract: %d characters (advisory limit %d)\n", res.AbstractChars, venue.AbstractLimit)

	for i, wds := range res.EquationWords {
		p.Fprintf(w, "Equation %d: %d words\n", i+1, wds)
	}
	for i, wds := range res.TableWords {
		p.Fprintf(w, "Table %d: %d words\n", i+1, wds)
	}
	for _, d := range res.FigureDetails {
		col := "single-column"
		if d.TwoColumn {
			col = "two-column"
		}
		p.Fprintf(w, "Figure %s: %s %.0fx%.0f aspect %.2f %s, %.1f words\n",
			d.Filename, filepath.Base(d.Resolved), d.Width, d.Height, d.Aspect, col, d.Words)
	}

	t := res.Tally
	p.Fprintf(w, "Main text: %d words\n", t.MainText)
	p.Fprintf(w, "Equations: %d words\n", t.Equations)
	p.Fprintf(w, "Figures:   %d words\n", t.Figures)
	p.Fprintf(w, "Tables:    %d words\n", t.Tables)
	p.Fprintf(w, "Total:     %d words\n", t.Total())

	diff := t.Total() - res.Limit
	pct := 100 * float64(diff) / float64(res.Limit)
	if diff > 0 {
		p.Fprintf(w, "OVER the %s limit of %d words by %d (%.1f%%)\n",
			res.Venue, res.Limit, diff, pct)
	} else {
		p.Fprintf(w, "UNDER the %s limit of %d words by %d (%.1f%%)\n",
			res.Venue, res.Limit, -diff, -pct)
	}
}
