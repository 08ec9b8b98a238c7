// Package estimate implements the word-equivalent heuristics for displayed
// equations, tables, and figures. The calibration constants come from the
// publisher's length guide and must not be tuned.
package estimate

import (
	"strings"

	"github.com/jlammi/texlength/internal/tex"
)

// Words-per-displayed-line multipliers from the length guide.
const (
	eqWordsPerLine    = 16
	eqWordsPerLineTwo = 32
)

// EquationWords estimates the word-equivalent of one equation block. The
// block always counts at least one line; each explicit row break inside it
// adds a line. Row breaks inside a nested array environment accumulate
// separately, and a non-zero array count multiplies the outer count at the
// end: a matrix contributes rows times lines-per-row, not rows plus lines.
func EquationWords(lines []string, b tex.Block) int {
	base := eqWordsPerLine
	if b.TwoColumn {
		base = eqWordsPerLineTwo
	}

	rows := 1
	arrayRows := 0
	inArray := false
	for i := b.Start + 1; i < b.End && i < len(lines); i++ {
		s := tex.StripComment(lines[i])
		if strings.Contains(s, `\begin{array}`) {
			inArray = true
		}
		if n := tex.RowBreaks(s); n > 0 {
			if inArray {
				arrayRows += n
			} else {
				rows += n
			}
		}
		if strings.Contains(s, `\end{array}`) {
			inArray = false
		}
	}
	if arrayRows > 0 {
		rows *= arrayRows
	}
	return rows * base
}
