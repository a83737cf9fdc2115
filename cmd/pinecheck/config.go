package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pinecheck/internal/builtins"
	"pinecheck/internal/driver"
	"pinecheck/internal/project"
)

// analysisConfig is the pinecheck.toml manifest with command-line overrides
// applied on top of it.
type analysisConfig struct {
	manifest         *project.Manifest
	fromManifest     bool
	maxDiagnostics   int
	corpusPath       string
	noWarnings       bool
	warningsAsErrors bool
	timings          bool
}

// resolveConfig discovers the manifest above the working directory and
// overrides its values with flags that were set explicitly.
func resolveConfig(cmd *cobra.Command) (*analysisConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, ok, err := project.Discover(wd)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	cfg := &analysisConfig{
		manifest:         m,
		fromManifest:     ok,
		maxDiagnostics:   m.Analysis.MaxDiagnostics,
		corpusPath:       m.CorpusPath(),
		noWarnings:       m.Analysis.NoWarnings,
		warningsAsErrors: m.Analysis.WarningsAsErrors,
	}

	flags := cmd.Flags()
	if flags.Changed("max-diagnostics") {
		if cfg.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("corpus") {
		if cfg.corpusPath, err = flags.GetString("corpus"); err != nil {
			return nil, fmt.Errorf("failed to get corpus flag: %w", err)
		}
	}
	if flags.Lookup("no-warnings") != nil && flags.Changed("no-warnings") {
		if cfg.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
			return nil, fmt.Errorf("failed to get no-warnings flag: %w", err)
		}
	}
	if flags.Lookup("warnings-as-errors") != nil && flags.Changed("warnings-as-errors") {
		if cfg.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if cfg.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if cfg.maxDiagnostics <= 0 {
		return nil, fmt.Errorf("--max-diagnostics must be positive, got %d", cfg.maxDiagnostics)
	}
	if cfg.noWarnings && cfg.warningsAsErrors {
		return nil, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	return cfg, nil
}

// loadCorpus returns the configured corpus, or nil for the embedded one.
func (c *analysisConfig) loadCorpus() (*builtins.Corpus, error) {
	if c.corpusPath == "" {
		return nil, nil
	}
	corpus, err := builtins.Load(c.corpusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return corpus, nil
}

func (c *analysisConfig) driverOptions() (driver.Options, error) {
	corpus, err := c.loadCorpus()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		MaxDiagnostics:   c.maxDiagnostics,
		Corpus:           corpus,
		IgnoreWarnings:   c.noWarnings,
		WarningsAsErrors: c.warningsAsErrors,
		EnableTimings:    c.timings,
		Extensions:       c.manifest.Files.Extensions,
	}, nil
}
