// Package config loads the optional gopanels configuration file.
//
// YAML (.yaml, .yml), TOML (.toml) and JSON with comments (.json, .jsonc)
// are accepted.
// Keys missing from the file keep their defaults; command line flags are
// applied on top by the caller.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gopanels/pkg/analysis"
	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/projection"
)

// Config is the complete configuration
type Config struct {
	Units UnitsConfig `yaml:"units" toml:"units" json:"units"`
	View  ViewConfig  `yaml:"view" toml:"view" json:"view"`
}

// UnitsConfig controls the length conversion of reports
type UnitsConfig struct {
	// Divisor is applied to model lengths, 12 turns inches into feet
	Divisor float64 `yaml:"divisor" toml:"divisor" json:"divisor"`
	// Precision is the number of decimals printed
	Precision int `yaml:"precision" toml:"precision" json:"precision"`
}

// ViewConfig selects the projection
type ViewConfig struct {
	Projection string    `yaml:"projection" toml:"projection" json:"projection"`
	Near       bool      `yaml:"near" toml:"near" json:"near"`
	Eye        []float64 `yaml:"eye" toml:"eye" json:"eye"`
}

// Default returns the built-in configuration
func Default() *Config {
	eye := projection.DefaultEye
	return &Config{
		Units: UnitsConfig{
			Divisor:   analysis.DefaultUnits.Divisor,
			Precision: analysis.DefaultUnits.Precision,
		},
		View: ViewConfig{
			Projection: projection.Front.String(),
			Near:       true,
			Eye:        []float64{eye.X, eye.Y, eye.Z},
		},
	}
}

// Load reads the file at path on top of the defaults. The format is
// chosen by file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".yaml", ".json", ...)
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Units.Divisor <= 0 {
		return fmt.Errorf("units.divisor must be positive, got %v", c.Units.Divisor)
	}
	if c.Units.Precision < 0 {
		return fmt.Errorf("units.precision must not be negative, got %d", c.Units.Precision)
	}
	if _, err := projection.ParseKind(c.View.Projection); err != nil {
		return fmt.Errorf("view.projection: %w", err)
	}
	if len(c.View.Eye) != 3 {
		return fmt.Errorf("view.eye needs 3 coordinates, got %d", len(c.View.Eye))
	}
	return nil
}

// AnalysisUnits returns the units for measurements
func (c *Config) AnalysisUnits() analysis.Units {
	return analysis.Units{Divisor: c.Units.Divisor, Precision: c.Units.Precision}
}

// ProjectionKind returns the configured projection
func (c *Config) ProjectionKind() (projection.Kind, error) {
	return projection.ParseKind(c.View.Projection)
}

// ProjectionOptions returns near/far and eye settings for projection.New
func (c *Config) ProjectionOptions() projection.Options {
	opts := projection.Options{Near: c.View.Near, Eye: projection.DefaultEye}
	if len(c.View.Eye) == 3 {
		opts.Eye = geometry.NewVector3(c.View.Eye[0], c.View.Eye[1], c.View.Eye[2])
	}
	return opts
}
