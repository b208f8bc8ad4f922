// Package config handles wire2mesh configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/wire2mesh/pkg/mesh"
)

// Policy names.
const (
	PolicyLegacy = "legacy"
	PolicyStrict = "strict"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings for a reconstruction run.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Reconstruct ReconstructConfig `yaml:"reconstruct"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// InputConfig holds the wireframe record files.
type InputConfig struct {
	Vertices string `yaml:"vertices"` // 3 floats per line
	Edges    string `yaml:"edges"`    // 2 vertex indices per line
}

// OutputConfig holds OBJ output settings.
type OutputConfig struct {
	Path      string `yaml:"path"`
	Precision int    `yaml:"precision"` // significant digits, 0 = shortest exact
	Name      string `yaml:"name"`
	Header    bool   `yaml:"header"`
}

// ReconstructConfig selects the face reconstruction policy.
// VerifyThirdEdge, DedupeFaces and Winding override the policy preset when set.
type ReconstructConfig struct {
	Policy          string `yaml:"policy"`
	VerifyThirdEdge *bool  `yaml:"verify_third_edge,omitempty"`
	DedupeFaces     *bool  `yaml:"dedupe_faces,omitempty"`
	Winding         string `yaml:"winding,omitempty"`
	Workers         int    `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Quiet   bool   `yaml:"quiet"` // console shows warnings and errors only
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Precision: 0,
			Header:    true,
		},
		Reconstruct: ReconstructConfig{
			Policy:  PolicyLegacy,
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options resolves the policy preset and overrides into reconstruction options.
func (r ReconstructConfig) Options() (mesh.ReconstructOptions, error) {
	var opts mesh.ReconstructOptions
	switch strings.ToLower(r.Policy) {
	case "", PolicyLegacy:
		opts = mesh.LegacyOptions()
	case PolicyStrict:
		opts = mesh.StrictOptions()
	default:
		return opts, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, r.Policy)
	}

	if r.VerifyThirdEdge != nil {
		opts.VerifyThirdEdge = *r.VerifyThirdEdge
	}
	if r.DedupeFaces != nil {
		opts.DedupeFaces = *r.DedupeFaces
	}
	if r.Winding != "" {
		w, err := mesh.ParseWindingOrder(r.Winding)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		opts.Winding = w
	}
	if r.Workers < 0 {
		return opts, fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, r.Workers)
	}
	opts.Workers = r.Workers

	return opts, nil
}

// Validate checks that a build run has everything it needs.
func (c *Config) Validate() error {
	if c.Input.Vertices == "" {
		return fmt.Errorf("%w: input.vertices is required", ErrInvalidConfig)
	}
	if c.Input.Edges == "" {
		return fmt.Errorf("%w: input.edges is required", ErrInvalidConfig)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("%w: output.path is required", ErrInvalidConfig)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 17 {
		return fmt.Errorf("%w: output.precision must be in [0, 17], got %d", ErrInvalidConfig, c.Output.Precision)
	}
	_, err := c.Reconstruct.Options()
	return err
}
