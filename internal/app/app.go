// Package app orchestrates one length-check run: it locates the structural
// regions of each manuscript, runs the configured main-text strategy and the
// three structural estimators, and compares the combined tally against the
// selected venue's word limit.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/jlammi/texlength/internal/estimate"
	"github.com/jlammi/texlength/internal/extool"
	"github.com/jlammi/texlength/internal/maintext"
	"github.com/jlammi/texlength/internal/tex"
	"github.com/jlammi/texlength/internal/venue"
)

// App carries the validated, read-only run configuration.
type App struct {
	cfg        Config
	limit      int
	inspector  extool.Inspector
	typesetter *extool.Typesetter
	tools      extool.Config
}

// Tally is the word-equivalent breakdown for one manuscript.
type Tally struct {
	MainText  int
	Equations int
	Figures   int
	Tables    int
}

// Total is the sum compared against the venue limit.
func (t Tally) Total() int {
	return t.MainText + t.Equations + t.Figures + t.Tables
}

// Result is everything the reporter needs for one manuscript.
type Result struct {
	Document      string
	Venue         string
	Limit         int
	AbstractChars int
	Tally         Tally

	EquationWords []int
	TableWords    []int
	FigureDetails []estimate.FigureDetail
}

// New validates the configuration and builds an App. Unknown venue,
// strategy, or inspector names are configuration errors.
func New(cfg Config) (*App, error) {
	if cfg.Venue == "" {
		cfg.Venue = venue.DefaultVenue
	}
	limit, err := venue.Limit(cfg.Venue)
	if err != nil {
		return nil, err
	}

	if cfg.Strategy == "" {
		cfg.Strategy = maintext.StrategyPlainText
	}
	if _, err := maintext.ParseStrategy(cfg.Strategy); err != nil {
		return nil, err
	}

	tools := extool.Config{
		DetexTimeout:     cfg.DetexTimeout,
		TypesetTimeout:   cfg.TypesetTimeout,
		InspectorTimeout: cfg.InspectorTimeout,
	}

	if cfg.Inspector == "" {
		cfg.Inspector = extool.BackendIdentify
	}
	inspector, err := extool.NewInspector(cfg.Inspector, tools)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:        cfg,
		limit:      limit,
		inspector:  inspector,
		typesetter: extool.NewTypesetter(cfg.LatexCmd, tools),
		tools:      tools,
	}, nil
}

// RunDocument processes one manuscript end to end. Documents are processed
// sequentially and independently; a failure here never touches other
// documents in the same invocation.
func (a *App) RunDocument(ctx context.Context, path string) (*Result, error) {
	doc, err := tex.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	lay, err := tex.Locate(doc.Lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if lay.Boundary == len(doc.Lines) {
		log.Debug().Str("document", path).Msg("no back-matter marker; counting to end of document")
	}

	res := &Result{
		Document:      path,
		Venue:         a.cfg.Venue,
		Limit:         a.limit,
		AbstractChars: tex.AbstractChars(doc.Lines, lay),
	}

	words, err := a.countMainText(ctx, doc, lay)
	if err != nil {
		return nil, fmt.Errorf("%s: main text: %w", path, err)
	}
	res.Tally.MainText = words

	for _, b := range lay.Equations {
		if b.Unterminated {
			log.Warn().Str("document", path).Int("line", b.Start+1).
				Msgf("unterminated %s environment; counting to end of scanned range", b.Env)
		}
		w := estimate.EquationWords(doc.Lines, b)
		res.EquationWords = append(res.EquationWords, w)
		res.Tally.Equations += w
	}
	for _, b := range lay.Tables {
		if b.Unterminated {
			log.Warn().Str("document", path).Int("line", b.Start+1).
				Msgf("unterminated %s environment; counting to end of scanned range", b.Env)
		}
		w := estimate.TableWords(doc.Lines, b)
		res.TableWords = append(res.TableWords, w)
		res.Tally.Tables += w
	}

	figWords, details, err := estimate.FigureWords(ctx, doc.Lines, lay.Figures, estimate.FigureConfig{
		BaseDir:       filepath.Dir(path),
		Substitutions: a.cfg.Substitutions,
		Inspector:     a.inspector,
		Scale:         a.cfg.FigureScale,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	res.Tally.Figures = figWords
	res.FigureDetails = details

	return res, nil
}

// countMainText dispatches to the configured strategy.
func (a *App) countMainText(ctx context.Context, doc *tex.Document, lay *tex.Layout) (int, error) {
	switch a.cfg.Strategy {
	case maintext.StrategyTypeset:
		return maintext.CountTypeset(ctx, doc, a.typesetter)
	default:
		return a.countPlainText(ctx, doc, lay)
	}
}

// countPlainText runs the detexer over the manuscript (or a derived copy
// with user-excluded environments commented out) and counts the narrative.
func (a *App) countPlainText(ctx context.Context, doc *tex.Document, lay *tex.Layout) (int, error) {
	src := doc.Path
	if len(a.cfg.ExcludeEnvs) > 0 {
		view := maintext.CommentEnvironments(doc.Lines, a.cfg.ExcludeEnvs)
		f, err := os.CreateTemp("", "texlength-view-*.tex")
		if err != nil {
			return 0, fmt.Errorf("write source view: %w", err)
		}
		defer os.Remove(f.Name())
		for _, ln := range view {
			if _, err := fmt.Fprintln(f, ln); err != nil {
				f.Close()
				return 0, fmt.Errorf("write source view: %w", err)
			}
		}
		if err := f.Close(); err != nil {
			return 0, fmt.Errorf("write source view: %w", err)
		}
		src = f.Name()
	}

	plain, err := extool.Detex(ctx, src, a.tools)
	if err != nil {
		return 0, err
	}
	count, aligned := maintext.CountPlainText(plain, doc.Lines, lay.Title)
	if !aligned {
		log.Warn().Str("document", doc.Path).
			Msg("narrative start not found in plain text; counting from the beginning, total may be inflated")
	}
	return count, nil
}
