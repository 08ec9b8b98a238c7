// Package tex locates the structural regions of a LaTeX manuscript that the
// length-accounting rules treat specially: the abstract, the back-matter
// boundary, displayed equations, tables, and figure inclusions. Everything in
// this package is a pure function over line slices; no file or process I/O.
package tex

import (
	"os"
	"strings"
)

// Document is the raw manuscript, loaded once per run and read-only
// thereafter. Plain-text lines produced by the detexer are a parallel view
// with their own indices; the two sequences are only ever aligned by content.
type Document struct {
	Path  string
	Lines []string
}

// Load reads the manuscript at path and splits it into lines.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Lines: SplitLines(string(b))}, nil
}

// SplitLines splits source text into lines, tolerating CRLF endings and a
// missing final newline.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// StripComment cuts a line at the first % that is not escaped as \%. The
// returned text is what the typesetter would actually see.
func StripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '%' && (i == 0 || line[i-1] != '\\') {
			return line[:i]
		}
	}
	return line
}
