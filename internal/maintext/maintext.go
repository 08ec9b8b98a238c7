// Package maintext counts the narrative words of a manuscript. Two
// interchangeable strategies exist: one derived from the detexer's plain-text
// output, one derived from a typeset log. Strategy selection is explicit
// configuration; neither falls back to the other.
package maintext

import (
	"fmt"
	"strings"
)

// Strategy names accepted on the command line.
const (
	StrategyPlainText = "plaintext"
	StrategyTypeset   = "typeset"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (string, error) {
	switch s {
	case StrategyPlainText, StrategyTypeset:
		return s, nil
	default:
		return "", fmt.Errorf("unsupported strategy %q (want %s or %s)", s, StrategyPlainText, StrategyTypeset)
	}
}

// CommentEnvironments returns a new line slice in which every line of the
// named environments, begin and end markers included, is commented out. The
// input is never mutated; the whole transformation is one forward pass.
func CommentEnvironments(lines []string, envs []string) []string {
	out := make([]string, len(lines))
	active := ""
	for i, ln := range lines {
		if active == "" {
			for _, env := range envs {
				if strings.Contains(ln, `\begin{`+env+`}`) {
					active = env
					break
				}
			}
		}
		if active == "" {
			out[i] = ln
			continue
		}
		out[i] = "%" + ln
		if strings.Contains(ln, `\end{`+active+`}`) {
			active = ""
		}
	}
	return out
}
