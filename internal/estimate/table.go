package estimate

import (
	"math"

	"github.com/jlammi/texlength/internal/tex"
)

// TableWords estimates the word-equivalent of one table block from its row
// count using the length guide's linear calibration: 6.5·rows + 13 for a
// single-column table, doubled for a table spanning both columns. The result
// is rounded down.
func TableWords(lines []string, b tex.Block) int {
	count := 1
	for i := b.Start; i <= b.End && i < len(lines); i++ {
		count += tex.RowBreaks(tex.StripComment(lines[i]))
	}
	if b.TwoColumn {
		return int(math.Floor(13*float64(count) + 26))
	}
	return int(math.Floor(6.5*float64(count) + 13))
}
