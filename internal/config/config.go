// Package config loads the YAML run configuration for a capacity-expansion
// solve: which source-compatibility behaviors to reproduce or replace, the
// solver timeout, and the input/output directory layout.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ream-lab/catex/internal/runopts"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// ExpectationMode selects how stage-2 (scenario-indexed) costs are
	// weighted: "source_compat" (default) reproduces the original prob_s *
	// 1/|S| factor; "probability_only" drops the extraneous 1/|S|.
	ExpectationMode string `yaml:"expectation_mode"`

	// IncludeShunts mirrors internal/admittance.Build's flag. Defaults to
	// true when absent from the YAML.
	IncludeShunts *bool `yaml:"include_shunts"`

	// PerLineFlowLimit switches the transmission submodel from the
	// aggregate per-bus flow cap to a per-line |flow| <= rate formulation.
	PerLineFlowLimit bool `yaml:"per_line_flow_limit"`

	// ShedPenalty is the reserved, currently-inert load-shed cost penalty
	// extension point; zero leaves the model unchanged.
	ShedPenalty float64 `yaml:"shed_penalty"`

	// SolverTimeoutSeconds bounds how long the composer will wait on
	// Solve before cancelling its context, the sole cancellation
	// boundary of a run. Zero means no timeout.
	SolverTimeoutSeconds int `yaml:"solver_timeout_seconds"`

	// InputDir and OutputDir are parsed but not used: ToRunOptions does not
	// carry them, inputs are always read from <main_dir>/inputs and results
	// are always written to <main_dir>/outputs.
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
}

// Load reads, merges defaults into, and validates a Config.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a Config but does not validate it, useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.ExpectationMode == "" {
		c.ExpectationMode = "source_compat"
	}
	if c.IncludeShunts == nil {
		includeShunts := true
		c.IncludeShunts = &includeShunts
	}
	return &c, nil
}

// Validate checks the configuration shape the way internal/model.Validate
// checks the data model: reject unknown enum values and negative durations
// before model assembly begins.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config: config is nil")
	}
	switch c.ExpectationMode {
	case "source_compat", "probability_only":
	default:
		return fmt.Errorf("config: expectation_mode must be \"source_compat\" or \"probability_only\", got %q", c.ExpectationMode)
	}
	if c.ShedPenalty < 0 {
		return fmt.Errorf("config: shed_penalty must be >= 0, got %g", c.ShedPenalty)
	}
	if c.SolverTimeoutSeconds < 0 {
		return fmt.Errorf("config: solver_timeout_seconds must be >= 0, got %d", c.SolverTimeoutSeconds)
	}
	return nil
}

// ToRunOptions converts the loaded YAML into the runopts.Options the
// composer and every submodel consume.
func (c *Config) ToRunOptions() runopts.Options {
	opts := runopts.Default()
	if c.ExpectationMode == "probability_only" {
		opts.ExpectationMode = runopts.ProbabilityOnly
	}
	if c.IncludeShunts != nil {
		opts.IncludeShunts = *c.IncludeShunts
	}
	opts.PerLineFlowLimit = c.PerLineFlowLimit
	opts.ShedPenalty = c.ShedPenalty
	return opts
}

// SolverTimeout returns the configured solver timeout, or 0 (no timeout)
// when unset.
func (c *Config) SolverTimeout() time.Duration {
	if c.SolverTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SolverTimeoutSeconds) * time.Second
}
