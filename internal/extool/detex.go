package extool

import (
	"context"

	"github.com/jlammi/texlength/internal/tex"
)

// PicturePlaceholder is the token the detexer substitutes for graphics
// inclusions in its plain-text output. Lines carrying it are artifacts, not
// narrative.
const PicturePlaceholder = "<Picture"

// Detex runs the detexer over the manuscript at path and returns its
// plain-text output as lines. The detexer is an external collaborator; when
// it is unavailable the plain-text counting strategy cannot run.
func Detex(ctx context.Context, path string, cfg Config) ([]string, error) {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, cfg.DetexTimeout)
	defer cancel()

	stdout, stderr, err := runCapture(ctx, "", nil, "detex", path)
	if err != nil {
		return nil, classify("detex", err, ctx, stderr)
	}
	return tex.SplitLines(stdout), nil
}
