package maintext

import (
	"reflect"
	"testing"
)

func TestCountPlainTextHyphenSplitting(t *testing.T) {
	raw := []string{`\maketitle`, `steady-state flow in pipes`}
	plain := []string{"steady-state flow in pipes"}
	got, aligned := CountPlainText(plain, raw, 0)
	if !aligned {
		t.Fatal("expected alignment")
	}
	// "steady-state" counts as two words.
	if got != 5 {
		t.Fatalf("CountPlainText() = %d, want 5", got)
	}
}

func TestCountPlainTextAlignsNarrativeStart(t *testing.T) {
	raw := []string{
		`\title{On Flows}`,
		`\maketitle`,
		``,
		`% setup comment`,
		`We study flows.`,
	}
	plain := []string{
		"On Flows",       // title residue, before the narrative
		"We study flows.",
		"More text here.",
	}
	got, aligned := CountPlainText(plain, raw, 1)
	if !aligned {
		t.Fatal("expected alignment")
	}
	// Only the narrative from "We study flows." on: 3 + 3 words.
	if got != 6 {
		t.Fatalf("CountPlainText() = %d, want 6", got)
	}
}

func TestCountPlainTextAnchorsOnEscapedPercentLine(t *testing.T) {
	// \% in prose is not a comment marker; the anchor must be the escaped
	// line itself, not the one after it.
	raw := []string{
		`\maketitle`,
		`Nearly 50\% increase`,
		`Second line here.`,
	}
	plain := []string{
		"increase",
		"Second line here.",
	}
	got, aligned := CountPlainText(plain, raw, 0)
	if !aligned {
		t.Fatal("expected alignment on the escaped-percent line")
	}
	if got != 4 {
		t.Fatalf("CountPlainText() = %d, want 4 (both lines counted)", got)
	}
}

func TestCountPlainTextSkipsCommentedAnchorLines(t *testing.T) {
	raw := []string{
		`\maketitle`,
		`text % margin note`,
		`Real start of prose.`,
	}
	plain := []string{
		"Real start of prose.",
		"More prose.",
	}
	got, aligned := CountPlainText(plain, raw, 0)
	if !aligned {
		t.Fatal("expected alignment")
	}
	if got != 6 {
		t.Fatalf("CountPlainText() = %d, want 6", got)
	}
}

func TestCountPlainTextFallbackCountsEverything(t *testing.T) {
	raw := []string{`\maketitle`, `Completely different narrative.`}
	plain := []string{"one two", "three four"}
	got, aligned := CountPlainText(plain, raw, 0)
	if aligned {
		t.Fatal("expected alignment failure")
	}
	if got != 4 {
		t.Fatalf("CountPlainText() = %d, want 4 (fallback counts from the start)", got)
	}
}

func TestCountPlainTextDropsPlaceholdersAndBlanks(t *testing.T) {
	raw := []string{`\maketitle`, `Narrative starts here.`}
	plain := []string{
		"",
		"<Picture fig1.png>",
		"Narrative starts here.",
		"",
		"and continues on.",
	}
	got, aligned := CountPlainText(plain, raw, 0)
	if !aligned {
		t.Fatal("expected alignment")
	}
	if got != 6 {
		t.Fatalf("CountPlainText() = %d, want 6", got)
	}
}

func TestCommentEnvironments(t *testing.T) {
	in := []string{
		"text",
		`\begin{equation}`,
		`E = mc^2`,
		`\end{equation}`,
		"more text",
	}
	orig := append([]string{}, in...)
	got := CommentEnvironments(in, []string{"equation"})
	want := []string{
		"text",
		`%\begin{equation}`,
		`%E = mc^2`,
		`%\end{equation}`,
		"more text",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CommentEnvironments() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(in, orig) {
		t.Fatal("input slice was mutated")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, ok := range []string{StrategyPlainText, StrategyTypeset} {
		if _, err := ParseStrategy(ok); err != nil {
			t.Fatalf("ParseStrategy(%q) error = %v", ok, err)
		}
	}
	if _, err := ParseStrategy("magic"); err == nil {
		t.Fatal("ParseStrategy should reject unknown names")
	}
}
