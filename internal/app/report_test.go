package app

import (
	"strings"
	"testing"
)

func TestReportOverLimit(t *testing.T) {
	// One equation with two row breaks (3x16=48), one two-column table with
	// one row break (13x2+26=52), no figures, 1000 narrative words against a
	// limit of 1000: over by 100, which is 10%.
	res := &Result{
		Document:      "paper.tex",
		Venue:         "PRL",
		Limit:         1000,
		AbstractChars: 480,
		Tally:         Tally{MainText: 1000, Equations: 48, Tables: 52},
		EquationWords: []int{48},
		TableWords:    []int{52},
	}

	var sb strings.Builder
	Report(&sb, res)
	out := sb.String()

	for _, want := range []string{
		"Abstract: 480 characters",
		"Equation 1: 48 words",
		"Table 1: 52 words",
		"Total:     1,100 words",
		"OVER the PRL limit of 1,000 words by 100 (10.0%)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportUnderLimit(t *testing.T) {
	res := &Result{
		Document: "paper.tex",
		Venue:    "PRL",
		Limit:    3750,
		Tally:    Tally{MainText: 3000},
	}

	var sb strings.Builder
	Report(&sb, res)
	out := sb.String()

	if !strings.Contains(out, "UNDER the PRL limit of 3,750 words by 750 (20.0%)") {
		t.Fatalf("unexpected verdict:\n%s", out)
	}
}

func TestTallyTotal(t *testing.T) {
	tl := Tally{MainText: 1, Equations: 2, Figures: 3, Tables: 4}
	if tl.Total() != 10 {
		t.Fatalf("Total() = %d, want 10", tl.Total())
	}
}
