package maintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jlammi/texlength/internal/extool"
	"github.com/jlammi/texlength/internal/tex"
)

// Environments commented out of the counting copy: displayed math is counted
// by its own heuristic, and abstract, acknowledgments, and bibliography never
// count toward main text.
var typesetExcluded = []string{
	"equation", "equation*",
	"eqnarray", "eqnarray*",
	"align", "align*",
	"displaymath",
	"acknowledgments", "acknowledgements",
	"abstract",
	"thebibliography",
}

// Lines that start back matter; the counting copy truncates before the first
// of them so nothing past the boundary reaches the typesetter.
var truncateBefore = []string{
	`\acknowledgments`,
	`\acknowledgements`,
	`\begin{acknowledgments}`,
	`\begin{acknowledgements}`,
	`\bibliography{`,
	`\begin{thebibliography}`,
	`\section*{End Matter}`,
}

// Glue markers the counting macro makes the typesetter write to its log, one
// line per counted interword space. The second form appears when the space
// is absorbed at a line end.
const (
	glueInterword = `\glue 3.08633`
	glueRightskip = `\glue(\rightskip) 2.84528`
)

const countJob = "count"

// CountTypeset counts narrative words by driving the typesetting pipeline
// over a modified copy of the manuscript and counting glue markers in the
// resulting log. All temporary artifacts live in a per-invocation directory
// removed before returning, success or not. A pipeline that produces no
// counting log is a fatal error for this strategy; there is no fallback.
func CountTypeset(ctx context.Context, doc *tex.Document, ts *extool.Typesetter) (int, error) {
	prepared := PrepareCountingSource(doc.Lines)

	tmp, err := os.MkdirTemp("", "texlength-")
	if err != nil {
		return 0, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	docName := countJob + ".tex"
	if err := os.WriteFile(filepath.Join(tmp, docName), []byte(strings.Join(prepared, "\n")+"\n"), 0o644); err != nil {
		return 0, fmt.Errorf("write counting copy: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "wordcount.tex"), []byte(wordcountMacro), 0o644); err != nil {
		return 0, fmt.Errorf("write counting macro: %w", err)
	}

	// Figures and bibliography databases stay in the manuscript's directory.
	srcDir := filepath.Dir(doc.Path)
	env := []string{
		"TEXINPUTS=.:" + srcDir + ":",
		"BIBINPUTS=.:" + srcDir + ":",
	}

	before := extool.SnapshotByproducts(srcDir)
	defer extool.RemoveNewByproducts(srcDir, before)

	// Typeset, bibliography, two settling passes, then the counting pass.
	// Ordinary typesetting complaints are tolerated; a missing tool or a
	// timeout is not.
	passes := []func() error{
		func() error { return ts.Pass(ctx, tmp, env, docName) },
		func() error { return ts.Bibtex(ctx, tmp, countJob, env) },
		func() error { return ts.Pass(ctx, tmp, env, docName) },
		func() error { return ts.Pass(ctx, tmp, env, docName) },
		func() error {
			return ts.Pass(ctx, tmp, env, "-jobname=wordcount",
				`\def\wcfile{`+docName+`}\input{wordcount.tex}`)
		},
	}
	for _, pass := range passes {
		if err := pass(); err != nil {
			if extool.Fatal(err) {
				return 0, err
			}
			log.Debug().Err(err).Msg("typeset pass complained")
		}
	}

	b, err := os.ReadFile(filepath.Join(tmp, "wordcount.log"))
	if err != nil {
		return 0, fmt.Errorf("typesetting pipeline produced no counting log: %w", err)
	}
	return CountGlueMarkers(string(b)), nil
}

// CountGlueMarkers counts log lines carrying either glue marker; their union
// is the word count.
func CountGlueMarkers(logText string) int {
	n := 0
	for _, ln := range tex.SplitLines(logText) {
		if strings.Contains(ln, glueInterword) || strings.Contains(ln, glueRightskip) {
			n++
		}
	}
	return n
}

// PrepareCountingSource derives the counting copy of the manuscript: the
// title command is neutralized, footnotes are kept out of the text via the
// class option, the document truncates before any back-matter trigger, and
// excluded environments are commented out. The input is not mutated.
func PrepareCountingSource(lines []string) []string {
	commented := CommentEnvironments(lines, typesetExcluded)

	out := make([]string, 0, len(commented)+4)
	for i, ln := range commented {
		switch {
		case strings.Contains(ln, `\maketitle`) && !strings.HasPrefix(ln, "%"):
			out = append(out, "%"+ln)
		case strings.Contains(ln, `\documentclass`) && !strings.HasPrefix(ln, "%"):
			out = append(out, injectClassOption(ln, "nofootinbib"))
		case isTruncationTrigger(lines[i]):
			// Each trigger gets its own truncation marker; only the first
			// one is ever reached by the typesetter. The original line is
			// tested, not the commented copy: the acknowledgments
			// environment is on the exclusion list too, and its commented
			// begin marker must still truncate what follows it.
			out = append(out, `\end{document}`, ln)
		default:
			out = append(out, ln)
		}
	}
	return out
}

func isTruncationTrigger(line string) bool {
	s := tex.StripComment(line)
	for _, t := range truncateBefore {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// injectClassOption adds an option to the \documentclass line, creating the
// option list when there is none.
func injectClassOption(line, opt string) string {
	if i := strings.Index(line, `\documentclass[`); i >= 0 {
		j := strings.Index(line[i:], "]")
		if j > 0 {
			return line[:i+j] + "," + opt + line[i+j:]
		}
		return line
	}
	return strings.Replace(line, `\documentclass`, `\documentclass[`+opt+`]`, 1)
}
