package app

import "time"

// Config holds runtime configuration for one invocation. It is built from
// flags and an optional config file at startup and read-only afterwards.
type Config struct {
	// Venue selects the word limit the tally is compared against.
	Venue string

	// Strategy selects the main-text counter: "plaintext" or "typeset".
	Strategy string

	// Inspector selects the image measurement backend: "identify" or
	// "exiftool".
	Inspector string

	// FigureScale multiplies the summed figure word-equivalents.
	FigureScale float64

	// ExcludeEnvs lists extra environments commented out of the source view
	// handed to the detexer by the plain-text strategy.
	ExcludeEnvs []string

	// Substitutions maps macro-like keys in referenced figure filenames to
	// replacement text.
	Substitutions map[string]string

	// LatexCmd overrides the typesetting executable; empty means "latex".
	LatexCmd string

	// ReportPDF, when set, is where the PDF summary report is written.
	ReportPDF string

	Verbose bool

	// Per-call timeouts for external collaborators; zero means defaults.
	DetexTimeout     time.Duration
	TypesetTimeout   time.Duration
	InspectorTimeout time.Duration
}
