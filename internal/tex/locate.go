package tex

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Block is a displayed equation or table environment. Start and End are the
// line indices of the begin and end markers. An environment whose end marker
// never appears before the scanned range runs out is kept with Unterminated
// set; the caller decides how loudly to complain.
type Block struct {
	Env          string
	Start, End   int
	TwoColumn    bool
	Unterminated bool
}

// Figure is a single image-inclusion directive before the back-matter
// boundary, carrying the filename referenced in its braced argument.
type Figure struct {
	Line     int
	Filename string
}

// Layout is the result of locating all structural regions in a manuscript.
type Layout struct {
	// Boundary is the first line index of back matter (acknowledgments,
	// bibliography, or an explicit End Matter section), or len(lines) when
	// none is present. Scanning for equations, tables, and figures stops
	// there.
	Boundary int

	// Title is the index of the single \maketitle line.
	Title int

	// AbstractStart and AbstractEnd are the indices of the abstract begin
	// and end markers.
	AbstractStart, AbstractEnd int

	Equations []Block
	Tables    []Block
	Figures   []Figure
}

// ErrMarkerCount reports a structural marker that must occur exactly once but
// did not. The wrapped message names the marker and the observed count.
var ErrMarkerCount = errors.New("structural marker count")

var (
	eqBeginRe    = regexp.MustCompile(`\\begin\{(equation\*?|eqnarray\*?|align\*?|displaymath)\}`)
	tableBeginRe = regexp.MustCompile(`\\begin\{(table\*?)\}`)
	includeRe    = regexp.MustCompile(`\\includegraphics\s*(?:\[[^\]]*\])?\s*\{([^}]+)\}`)
)

var boundaryMarkers = []string{
	`\acknowledgments`,
	`\acknowledgements`,
	`\begin{acknowledgments}`,
	`\begin{acknowledgements}`,
	`\bibliography{`,
	`\begin{thebibliography}`,
	`\section*{End Matter}`,
}

// Locate scans the raw line sequence and returns the manuscript layout.
// Exactly one \maketitle and exactly one abstract begin/end pair are
// required; boundary markers may occur zero or more times.
func Locate(lines []string) (*Layout, error) {
	stripped := make([]string, len(lines))
	for i, ln := range lines {
		stripped[i] = StripComment(ln)
	}

	title, err := singleton(stripped, `\maketitle`)
	if err != nil {
		return nil, err
	}
	absStart, err := singleton(stripped, `\begin{abstract}`)
	if err != nil {
		return nil, err
	}
	absEnd, err := singleton(stripped, `\end{abstract}`)
	if err != nil {
		return nil, err
	}

	lay := &Layout{
		Boundary:      Boundary(lines),
		Title:         title,
		AbstractStart: absStart,
		AbstractEnd:   absEnd,
	}

	wide := widetextSpans(stripped, lay.Boundary)

	for i := 0; i < lay.Boundary; i++ {
		if m := eqBeginRe.FindStringSubmatch(stripped[i]); m != nil {
			b := closeBlock(stripped, i, m[1], lay.Boundary)
			b.TwoColumn = inSpans(wide, i)
			lay.Equations = append(lay.Equations, b)
			i = b.End
			continue
		}
		if m := tableBeginRe.FindStringSubmatch(stripped[i]); m != nil {
			b := closeBlock(stripped, i, m[1], lay.Boundary)
			b.TwoColumn = strings.HasSuffix(m[1], "*")
			lay.Tables = append(lay.Tables, b)
			i = b.End
			continue
		}
		if m := includeRe.FindStringSubmatch(stripped[i]); m != nil {
			lay.Figures = append(lay.Figures, Figure{Line: i, Filename: strings.TrimSpace(m[1])})
		}
	}
	return lay, nil
}

// Boundary returns the earliest line index carrying any back-matter marker,
// or len(lines) when the document has no back matter.
func Boundary(lines []string) int {
	for i, ln := range lines {
		s := StripComment(ln)
		for _, m := range boundaryMarkers {
			if strings.Contains(s, m) {
				return i
			}
		}
	}
	return len(lines)
}

// AbstractChars counts the characters of the abstract body, the lines
// strictly between the begin and end markers, joined by single spaces.
func AbstractChars(lines []string, lay *Layout) int {
	var parts []string
	for i := lay.AbstractStart + 1; i < lay.AbstractEnd && i < len(lines); i++ {
		if s := strings.TrimSpace(StripComment(lines[i])); s != "" {
			parts = append(parts, s)
		}
	}
	return utf8.RuneCountInString(strings.Join(parts, " "))
}

// RowBreaks counts explicit \\ markers on a single line.
func RowBreaks(line string) int {
	return strings.Count(line, `\\`)
}

func singleton(stripped []string, marker string) (int, error) {
	idx, count := -1, 0
	for i, ln := range stripped {
		if strings.Contains(ln, marker) {
			if count == 0 {
				idx = i
			}
			count++
		}
	}
	if count != 1 {
		return -1, fmt.Errorf("%w: %s occurs %d times, want exactly 1", ErrMarkerCount, marker, count)
	}
	return idx, nil
}

// closeBlock finds the matching end marker starting the line after begin.
// A block that never closes extends to the end of the scanned range.
func closeBlock(stripped []string, begin int, env string, limit int) Block {
	end := `\end{` + env + `}`
	for i := begin + 1; i < limit; i++ {
		if strings.Contains(stripped[i], end) {
			return Block{Env: env, Start: begin, End: i}
		}
	}
	return Block{Env: env, Start: begin, End: limit - 1, Unterminated: true}
}

type span struct{ start, end int }

// widetextSpans returns the widetext environment spans before the boundary.
// Equations inside widetext span both columns and use the two-column
// multiplier.
func widetextSpans(stripped []string, limit int) []span {
	var spans []span
	open := -1
	for i := 0; i < limit; i++ {
		if strings.Contains(stripped[i], `\begin{widetext}`) && open < 0 {
			open = i
			continue
		}
		if strings.Contains(stripped[i], `\end{widetext}`) && open >= 0 {
			spans = append(spans, span{open, i})
			open = -1
		}
	}
	if open >= 0 {
		spans = append(spans, span{open, limit - 1})
	}
	return spans
}

func inSpans(spans []span, i int) bool {
	for _, s := range spans {
		if i >= s.start && i <= s.end {
			return true
		}
	}
	return false
}
