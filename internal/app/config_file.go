package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flags.
type FileConfig struct {
	Venue     string `yaml:"venue" json:"venue"`
	Strategy  string `yaml:"strategy" json:"strategy"`
	Inspector string `yaml:"inspector" json:"inspector"`

	Figure struct {
		Scale float64 `yaml:"scale" json:"scale"`
	} `yaml:"figure" json:"figure"`

	Exclude       []string          `yaml:"exclude" json:"exclude"`
	Substitutions map[string]string `yaml:"substitutions" json:"substitutions"`

	Latex string `yaml:"latex" json:"latex"`

	Report struct {
		PDF string `yaml:"pdf" json:"pdf"`
	} `yaml:"report" json:"report"`

	Verbose bool `yaml:"verbose" json:"verbose"`

	Timeouts struct {
		Detex     time.Duration `yaml:"detex" json:"detex"`
		Typeset   time.Duration `yaml:"typeset" json:"typeset"`
		Inspector time.Duration `yaml:"inspector" json:"inspector"`
	} `yaml:"timeouts" json:"timeouts"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields still
// unset after flag parsing. Explicit flags win over file config.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Venue == "" && fc.Venue != "" {
		cfg.Venue = fc.Venue
	}
	if cfg.Strategy == "" && fc.Strategy != "" {
		cfg.Strategy = fc.Strategy
	}
	if cfg.Inspector == "" && fc.Inspector != "" {
		cfg.Inspector = fc.Inspector
	}
	if cfg.FigureScale == 0 && fc.Figure.Scale > 0 {
		cfg.FigureScale = fc.Figure.Scale
	}
	if len(cfg.ExcludeEnvs) == 0 && len(fc.Exclude) > 0 {
		cfg.ExcludeEnvs = append([]string{}, fc.Exclude...)
	}
	if len(fc.Substitutions) > 0 {
		if cfg.Substitutions == nil {
			cfg.Substitutions = map[string]string{}
		}
		for k, v := range fc.Substitutions {
			if _, ok := cfg.Substitutions[k]; !ok {
				cfg.Substitutions[k] = v
			}
		}
	}
	if cfg.LatexCmd == "" && fc.Latex != "" {
		cfg.LatexCmd = fc.Latex
	}
	if cfg.ReportPDF == "" && fc.Report.PDF != "" {
		cfg.ReportPDF = fc.Report.PDF
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if cfg.DetexTimeout == 0 && fc.Timeouts.Detex > 0 {
		cfg.DetexTimeout = fc.Timeouts.Detex
	}
	if cfg.TypesetTimeout == 0 && fc.Timeouts.Typeset > 0 {
		cfg.TypesetTimeout = fc.Timeouts.Typeset
	}
	if cfg.InspectorTimeout == 0 && fc.Timeouts.Inspector > 0 {
		cfg.InspectorTimeout = fc.Timeouts.Inspector
	}
}
