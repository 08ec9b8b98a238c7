package maintext

import (
	"reflect"
	"strings"
	"testing"
)

func TestPrepareCountingSource(t *testing.T) {
	in := []string{
		`\documentclass[aps,prl]{revtex4-2}`,
		`\begin{document}`,
		`\maketitle`,
		`\begin{abstract}`,
		`Abstract text.`,
		`\end{abstract}`,
		`Narrative.`,
		`\begin{equation}`,
		`E = mc^2`,
		`\end{equation}`,
		`\acknowledgments`,
		`Thanks.`,
		`\bibliography{refs}`,
	}
	orig := append([]string{}, in...)
	got := PrepareCountingSource(in)

	if !reflect.DeepEqual(in, orig) {
		t.Fatal("input slice was mutated")
	}

	joined := strings.Join(got, "\n")
	if !strings.Contains(joined, `\documentclass[aps,prl,nofootinbib]{revtex4-2}`) {
		t.Fatalf("class option not injected:\n%s", joined)
	}
	if !strings.Contains(joined, "%\\maketitle") {
		t.Fatal("title command not neutralized")
	}
	for _, ln := range []string{`%\begin{abstract}`, `%Abstract text.`, `%\end{abstract}`, `%\begin{equation}`, `%E = mc^2`, `%\end{equation}`} {
		if !strings.Contains(joined, ln) {
			t.Fatalf("excluded environment line %q not commented:\n%s", ln, joined)
		}
	}

	// A truncation marker must precede the first back-matter trigger.
	ack := indexOf(got, `\acknowledgments`)
	if ack <= 0 || got[ack-1] != `\end{document}` {
		t.Fatalf("truncation marker missing before acknowledgments: %v", got)
	}
	bib := indexOf(got, `\bibliography{refs}`)
	if bib <= 0 || got[bib-1] != `\end{document}` {
		t.Fatalf("truncation marker missing before bibliography: %v", got)
	}
	if got[ack+1] == `\end{document}` {
		// Narrative line between ack and bib untouched
		t.Fatal("unexpected marker placement")
	}
}

func TestPrepareCountingSourceTruncatesBeforeAcknowledgmentsEnvironment(t *testing.T) {
	in := []string{
		`\documentclass{revtex4-2}`,
		`\begin{document}`,
		`Narrative.`,
		`\begin{acknowledgments}`,
		`We thank everyone.`,
		`\end{acknowledgments}`,
		`\appendix`,
		`Appendix prose that must not be counted.`,
	}
	got := PrepareCountingSource(in)

	// The environment is on the exclusion list, so its lines are commented;
	// the truncation marker must still land before its begin marker so the
	// appendix never reaches the typesetter.
	ack := indexOf(got, `%\begin{acknowledgments}`)
	if ack < 0 {
		t.Fatalf("acknowledgments begin marker not commented: %v", got)
	}
	if got[ack-1] != `\end{document}` {
		t.Fatalf("truncation marker missing before acknowledgments environment: %v", got)
	}
}

func indexOf(lines []string, want string) int {
	for i, ln := range lines {
		if ln == want {
			return i
		}
	}
	return -1
}

func TestInjectClassOptionWithoutOptions(t *testing.T) {
	got := injectClassOption(`\documentclass{article}`, "nofootinbib")
	if got != `\documentclass[nofootinbib]{article}` {
		t.Fatalf("injectClassOption() = %q", got)
	}
}

func TestCountGlueMarkers(t *testing.T) {
	logText := strings.Join([]string{
		`This is latex, Version 3`,
		`.\glue 3.08633`,
		`..\glue 3.08633 plus 1.0`,
		`.\glue(\rightskip) 2.84528`,
		`.\glue 4.0`,
		`random noise`,
	}, "\n")
	if got := CountGlueMarkers(logText); got != 3 {
		t.Fatalf("CountGlueMarkers() = %d, want 3", got)
	}
	if got := CountGlueMarkers(""); got != 0 {
		t.Fatalf("CountGlueMarkers(\"\") = %d, want 0", got)
	}
}
