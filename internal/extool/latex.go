package extool

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// Typesetter drives the external typesetting pipeline: typeset passes,
// a bibliography pass, and the final counting pass. The executable name is
// configurable so pdflatex or a wrapper can be substituted.
type Typesetter struct {
	Latex string
	cfg   Config
}

// NewTypesetter builds a Typesetter. An empty latex name defaults to "latex".
func NewTypesetter(latex string, cfg Config) *Typesetter {
	if latex == "" {
		latex = "latex"
	}
	return &Typesetter{Latex: latex, cfg: cfg.withDefaults()}
}

// Pass runs one typeset pass in dir. The typesetter exits non-zero on many
// recoverable complaints, so callers decide whether a pass failure matters;
// a missing binary or a timeout is always returned as fatal.
func (t *Typesetter) Pass(ctx context.Context, dir string, extraEnv []string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.TypesetTimeout)
	defer cancel()

	full := append([]string{"-interaction=batchmode"}, args...)
	_, stderr, err := runCapture(ctx, dir, extraEnv, t.Latex, full...)
	if err != nil {
		return classify(t.Latex, err, ctx, stderr)
	}
	return nil
}

// Bibtex runs the bibliography pass for the given jobname in dir. It takes
// the same extra environment as the typeset passes so BIBINPUTS resolves
// databases next to the manuscript.
func (t *Typesetter) Bibtex(ctx context.Context, dir, job string, extraEnv []string) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.TypesetTimeout)
	defer cancel()

	_, stderr, err := runCapture(ctx, dir, extraEnv, "bibtex", job)
	if err != nil {
		return classify("bibtex", err, ctx, stderr)
	}
	return nil
}

// Fatal reports whether a pass error means the pipeline itself is unusable
// (missing binary, timeout) rather than an ordinary typesetting complaint.
func Fatal(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, exec.ErrNotFound)
}

const byproductPattern = "*-eps-converted-to.pdf"

// SnapshotByproducts records the image-conversion byproducts already present
// in dir, so that only files created by this run are cleaned up afterwards.
func SnapshotByproducts(dir string) map[string]struct{} {
	out := map[string]struct{}{}
	matches, _ := filepath.Glob(filepath.Join(dir, byproductPattern))
	for _, m := range matches {
		out[m] = struct{}{}
	}
	return out
}

// RemoveNewByproducts deletes conversion byproducts in dir that were not in
// the before snapshot.
func RemoveNewByproducts(dir string, before map[string]struct{}) {
	matches, _ := filepath.Glob(filepath.Join(dir, byproductPattern))
	for _, m := range matches {
		if _, ok := before[m]; !ok {
			_ = os.Remove(m)
		}
	}
}
