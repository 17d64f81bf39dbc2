package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rm-hull/edge-blur/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 80.0, cfg.LowThreshold)
	assert.Equal(t, 120.0, cfg.HighThreshold)
	assert.Equal(t, 3, cfg.DilateWindow)
	assert.Equal(t, 2, cfg.DilateIterations)
	assert.Equal(t, 9, cfg.BlurKernelSize)
	assert.Equal(t, 0.0, cfg.BlurSigma)
	assert.Equal(t, 100, cfg.ZoomOffsetX)
	assert.Equal(t, 200, cfg.ZoomOffsetY)
	assert.Equal(t, 180, cfg.ZoomSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "edge-blur.toml")
		require.NoError(t, os.WriteFile(path, []byte("low_threshold = 50\nblur_kernel_size = 5\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 50.0, cfg.LowThreshold)
		assert.Equal(t, 5, cfg.BlurKernelSize)
		assert.Equal(t, 120.0, cfg.HighThreshold)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "edge-blur.toml")
		require.NoError(t, os.WriteFile(path, []byte("dilate_iterations = 4\n"), 0644))
		t.Setenv("EDGEBLUR_DILATE_ITERATIONS", "1")
		t.Setenv("EDGEBLUR_HIGH_THRESHOLD", "150.5")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.DilateIterations)
		assert.Equal(t, 150.5, cfg.HighThreshold)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, pipeline.ErrFileNotFound)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("low_threshold = \"eighty\"\n"), 0644))

		_, err := Load(path)
		assert.ErrorIs(t, err, pipeline.ErrConfiguration)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv("EDGEBLUR_ZOOM_SIZE", "big")
		_, err := Load("")
		assert.ErrorIs(t, err, pipeline.ErrConfiguration)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero zoom size", func(c *Config) { c.ZoomSize = 0 }},
		{"tiny panel cells", func(c *Config) { c.PanelCellSize = 4 }},
		{"zero frame delay", func(c *Config) { c.FrameDelay = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), pipeline.ErrConfiguration)
		})
	}
}
