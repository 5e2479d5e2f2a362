package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gopanels/pkg/analysis"
	"github.com/philipparndt/gopanels/pkg/geometry"
	"github.com/philipparndt/gopanels/pkg/projection"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, analysis.DefaultUnits, cfg.AnalysisUnits())

	kind, err := cfg.ProjectionKind()
	require.NoError(t, err)
	assert.Equal(t, projection.Front, kind)

	opts := cfg.ProjectionOptions()
	assert.True(t, opts.Near)
	assert.Equal(t, projection.DefaultEye, opts.Eye)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
units:
  divisor: 2.54
  precision: 1
view:
  projection: perspective
  near: false
  eye: [1, 2, 3]
`)
	cfg, err := Parse(data, ".yaml")
	require.NoError(t, err)

	assert.Equal(t, analysis.Units{Divisor: 2.54, Precision: 1}, cfg.AnalysisUnits())
	kind, err := cfg.ProjectionKind()
	require.NoError(t, err)
	assert.Equal(t, projection.Perspective, kind)
	opts := cfg.ProjectionOptions()
	assert.False(t, opts.Near)
	assert.Equal(t, geometry.NewVector3(1, 2, 3), opts.Eye)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("units:\n  precision: 3\n"), ".yml")
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.Units.Divisor)
	assert.Equal(t, 3, cfg.Units.Precision)
	assert.True(t, cfg.View.Near)
	assert.Equal(t, "front", cfg.View.Projection)
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
  // lengths in centimeters
  "units": {"divisor": 100, "precision": 2},
  "view": {"projection": "top", /* far side */ "near": false},
}`)
	cfg, err := Parse(data, ".jsonc")
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Units.Divisor)
	assert.Equal(t, "top", cfg.View.Projection)
	assert.False(t, cfg.View.Near)
	assert.Len(t, cfg.View.Eye, 3)
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[units]
divisor = 2.54
precision = 1

[view]
projection = "side"
eye = [0.0, 5.0, 50.0]
`)
	cfg, err := Parse(data, ".toml")
	require.NoError(t, err)

	assert.Equal(t, analysis.Units{Divisor: 2.54, Precision: 1}, cfg.AnalysisUnits())
	assert.Equal(t, "side", cfg.View.Projection)
	assert.True(t, cfg.View.Near)
	assert.Equal(t, geometry.NewVector3(0, 5, 50), cfg.ProjectionOptions().Eye)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"zero divisor", "units:\n  divisor: 0\n", ".yaml"},
		{"negative precision", `{"units": {"precision": -1}}`, ".json"},
		{"unknown projection", "view:\n  projection: fisheye\n", ".yaml"},
		{"short eye", "view:\n  eye: [1, 2]\n", ".yaml"},
		{"broken yaml", "units: [", ".yaml"},
		{"broken toml", "[units\ndivisor = 12", ".toml"},
		{"unsupported format", "divisor=12", ".ini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopanels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units:\n  divisor: 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Units.Divisor)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
