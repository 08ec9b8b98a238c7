package maintext

import (
	"strings"

	"github.com/jlammi/texlength/internal/extool"
	"github.com/jlammi/texlength/internal/tex"
)

// CountPlainText counts narrative words from the detexer's plain-text output.
// Blank lines and image-placeholder artifacts are dropped, the narrative
// start is aligned against the first raw line after the title, hyphenated
// compounds are split, and the remaining whitespace-delimited tokens are
// counted.
//
// aligned is false when no plain-text line matched the first narrative raw
// line; counting then starts from the very beginning of the plain-text
// sequence, which inflates the count. Callers should surface that as a
// warning rather than staying silent.
func CountPlainText(plain, raw []string, titleLine int) (count int, aligned bool) {
	kept := make([]string, 0, len(plain))
	for _, ln := range plain {
		if strings.TrimSpace(ln) == "" || strings.Contains(ln, extool.PicturePlaceholder) {
			continue
		}
		kept = append(kept, ln)
	}

	offset := 0
	aligned = false
	if first, ok := firstNarrativeLine(raw, titleLine); ok {
		for i, ln := range kept {
			t := strings.TrimSpace(ln)
			if t != "" && strings.Contains(first, t) {
				offset = i
				aligned = true
				break
			}
		}
	}

	for _, ln := range kept[offset:] {
		// A hyphenated compound counts as two words.
		count += len(strings.Fields(strings.ReplaceAll(ln, "-", " ")))
	}
	return count, aligned
}

// firstNarrativeLine finds the first raw line after the title command that is
// non-blank and free of comment markers; its trimmed text anchors the
// content-based alignment between the raw and plain-text sequences. An
// escaped \% in prose is not a comment marker and does not disqualify a line.
func firstNarrativeLine(raw []string, titleLine int) (string, bool) {
	for i := titleLine + 1; i < len(raw); i++ {
		s := tex.StripComment(raw[i])
		if strings.TrimSpace(s) == "" || s != raw[i] {
			continue
		}
		return strings.TrimSpace(raw[i]), true
	}
	return "", false
}
