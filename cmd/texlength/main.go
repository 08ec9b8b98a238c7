package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jlammi/texlength/internal/app"
)

// substFlag collects repeatable -sub key=value pairs into a typed map.
type substFlag map[string]string

func (s substFlag) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (s substFlag) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("substitution %q: want key=value", v)
	}
	s[strings.TrimSpace(k)] = val
	return nil
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		venueID    string
		strategy   string
		inspector  string
		scale      float64
		exclude    string
		latexCmd   string
		configPath string
		reportPDF  string
		verbose    bool
	)
	subs := substFlag{}

	flag.StringVar(&venueID, "venue", "", "Venue identifier the total is checked against (default PRL)")
	flag.StringVar(&strategy, "strategy", "", "Main-text counting strategy: plaintext or typeset (default plaintext)")
	flag.StringVar(&inspector, "inspector", "", "Image inspection backend: identify or exiftool (default identify)")
	flag.Float64Var(&scale, "figure.scale", 0, "Scale factor applied to summed figure words (default 1.1)")
	flag.StringVar(&exclude, "exclude", "", "Comma-separated environments to exclude from the plaintext source view")
	flag.Var(subs, "sub", "Figure filename substitution key=value (repeatable)")
	flag.StringVar(&latexCmd, "latex", "", "Typesetting executable override (default latex)")
	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&reportPDF, "report.pdf", "", "Write a PDF summary report to this path")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Venue:         venueID,
		Strategy:      strategy,
		Inspector:     inspector,
		FigureScale:   scale,
		LatexCmd:      latexCmd,
		ReportPDF:     reportPDF,
		Substitutions: subs,
		Verbose:       verbose,
	}
	if s := strings.TrimSpace(exclude); s != "" {
		for _, p := range strings.Split(s, ",") {
			if v := strings.TrimSpace(p); v != "" {
				cfg.ExcludeEnvs = append(cfg.ExcludeEnvs, v)
			}
		}
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	docs := flag.Args()
	if len(docs) == 0 {
		log.Error().Msg("no documents given")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, docs); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(2)
	}
}

func run(cfg app.Config, docs []string) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	// Each document is processed independently; one failure does not stop
	// the rest, but any failure makes the whole run exit non-zero.
	var results []*app.Result
	failed := 0
	for _, doc := range docs {
		res, err := a.RunDocument(ctx, doc)
		if err != nil {
			log.Error().Err(err).Str("document", doc).Msg("document failed")
			failed++
			continue
		}
		app.Report(os.Stdout, res)
		results = append(results, res)
	}

	if cfg.ReportPDF != "" && len(results) > 0 {
		if err := app.WriteSummaryPDF(results, cfg.ReportPDF); err != nil {
			return fmt.Errorf("write PDF report: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docs))
	}
	return nil
}
