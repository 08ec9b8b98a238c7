package estimate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jlammi/texlength/internal/extool"
	"github.com/jlammi/texlength/internal/tex"
)

// ErrFigureMissing reports a referenced image that resolved to zero or more
// than one file among the candidate extensions.
var ErrFigureMissing = errors.New("figure file not found")

// DefaultFigureScale is applied to the summed per-figure word-equivalents.
const DefaultFigureScale = 1.1

// Extension candidates tried when resolving a referenced image, in order.
var extensionCandidates = []string{"", ".pdf", ".eps", ".png"}

// FigureConfig configures figure resolution and measurement.
type FigureConfig struct {
	// BaseDir is the directory image paths are resolved against, normally
	// the manuscript's directory.
	BaseDir string

	// Substitutions maps macro-like keys appearing in referenced filenames
	// to their replacement text, applied before resolution.
	Substitutions map[string]string

	// Inspector measures non-PDF images. PDF geometry is read directly.
	Inspector extool.Inspector

	// Scale multiplies the summed figure words; zero means the default 1.1.
	Scale float64
}

// FigureDetail is the per-figure diagnostic record used in the report.
type FigureDetail struct {
	Filename  string
	Resolved  string
	Width     float64
	Height    float64
	Aspect    float64
	TwoColumn bool
	Words     float64
}

// FigureWords estimates the combined word-equivalent of all qualifying
// figure inclusions. An inclusion with no enclosing figure environment is
// skipped; a referenced file that cannot be resolved to exactly one
// candidate is an error, never a silent zero.
func FigureWords(ctx context.Context, lines []string, figures []tex.Figure, cfg FigureConfig) (int, []FigureDetail, error) {
	scale := cfg.Scale
	if scale <= 0 {
		scale = DefaultFigureScale
	}

	seen := map[string]struct{}{}
	var details []FigureDetail
	sum := 0.0
	for _, fig := range figures {
		if _, ok := seen[fig.Filename]; ok {
			continue
		}
		seen[fig.Filename] = struct{}{}

		twoCol, ok := enclosingFigure(lines, fig.Line)
		if !ok {
			continue
		}

		resolved, err := resolveImage(fig.Filename, cfg)
		if err != nil {
			return 0, nil, err
		}

		w, h, err := measure(ctx, resolved, cfg.Inspector)
		if err != nil {
			return 0, nil, fmt.Errorf("measure %s: %w", resolved, err)
		}

		aspect := w / h
		var words float64
		if twoCol {
			words = 300/(0.5*aspect) + 40
		} else {
			words = 150/aspect + 20
		}
		sum += words
		details = append(details, FigureDetail{
			Filename:  fig.Filename,
			Resolved:  resolved,
			Width:     w,
			Height:    h,
			Aspect:    aspect,
			TwoColumn: twoCol,
			Words:     words,
		})
	}
	return int(math.Floor(sum * scale)), details, nil
}

// enclosingFigure scans backward from the inclusion line for the nearest
// figure environment begin marker and reports whether it is the starred,
// column-spanning variant. No enclosing marker means the inclusion is not a
// counted figure.
func enclosingFigure(lines []string, from int) (twoColumn, ok bool) {
	for i := from; i >= 0; i-- {
		s := tex.StripComment(lines[i])
		if strings.Contains(s, `\begin{figure*}`) {
			return true, true
		}
		if strings.Contains(s, `\begin{figure}`) {
			return false, true
		}
	}
	return false, false
}

// resolveImage applies configured filename substitutions, then tries the
// candidate extensions. Exactly one candidate must exist on disk.
func resolveImage(name string, cfg FigureConfig) (string, error) {
	for k, v := range cfg.Substitutions {
		name = strings.ReplaceAll(name, k, v)
	}

	var matches []string
	for _, ext := range extensionCandidates {
		p := filepath.Join(cfg.BaseDir, name+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: %s (tried as-is, %s)", ErrFigureMissing, name, strings.Join(extensionCandidates[1:], ", "))
	default:
		return "", fmt.Errorf("%w: %s resolves ambiguously to %s", ErrFigureMissing, name, strings.Join(matches, ", "))
	}
}

// measure returns width and height for the resolved file. PDF pages are read
// directly; everything else goes through the image inspector.
func measure(ctx context.Context, path string, inspector extool.Inspector) (float64, float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return pdfPageSize(path)
	}
	if inspector == nil {
		return 0, 0, errors.New("no image inspector configured")
	}
	return inspector.Dimensions(ctx, path)
}

// pdfPageSize reads the first page's MediaBox, walking up the page tree for
// an inherited box when the page itself carries none.
func pdfPageSize(path string) (float64, float64, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return 0, 0, errors.New("pdf has no pages")
	}
	v := r.Page(1).V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); mb.Len() == 4 {
			w := mb.Index(2).Float64() - mb.Index(0).Float64()
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if w <= 0 || h <= 0 {
				return 0, 0, fmt.Errorf("degenerate MediaBox %gx%g", w, h)
			}
			return w, h, nil
		}
		v = v.Key("Parent")
	}
	return 0, 0, errors.New("pdf page has no MediaBox")
}
