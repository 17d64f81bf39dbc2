// Package config holds the tunable constants of the edge blur pipeline.
//
// Values start from Default and may be overridden by a TOML file and then
// by EDGEBLUR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/rm-hull/edge-blur/internal/pipeline"
)

const envPrefix = "EDGEBLUR_"

type Config struct {
	LowThreshold     float64 `toml:"low_threshold"`
	HighThreshold    float64 `toml:"high_threshold"`
	DilateWindow     int     `toml:"dilate_window"`
	DilateIterations int     `toml:"dilate_iterations"`
	BlurKernelSize   int     `toml:"blur_kernel_size"`
	BlurSigma        float64 `toml:"blur_sigma"`

	// Zoom crops start at (width - ZoomOffsetX, height - ZoomOffsetY).
	ZoomOffsetX int `toml:"zoom_offset_x"`
	ZoomOffsetY int `toml:"zoom_offset_y"`
	ZoomSize    int `toml:"zoom_size"`

	PanelCellSize int     `toml:"panel_cell_size"`
	FrameDelay    float64 `toml:"frame_delay"`
}

func Default() Config {
	return Config{
		LowThreshold:     80,
		HighThreshold:    120,
		DilateWindow:     3,
		DilateIterations: 2,
		BlurKernelSize:   9,
		BlurSigma:        0,
		ZoomOffsetX:      100,
		ZoomOffsetY:      200,
		ZoomSize:         180,
		PanelCellSize:    320,
		FrameDelay:       1.0,
	}
}

// Load layers the TOML file at path (if any) and the environment over the
// defaults, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("config file %s: %w", path, pipeline.ErrFileNotFound)
			}
			return cfg, fmt.Errorf("failed to parse config file %s: %w: %v", path, pipeline.ErrConfiguration, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"LOW_THRESHOLD":  &c.LowThreshold,
		"HIGH_THRESHOLD": &c.HighThreshold,
		"BLUR_SIGMA":     &c.BlurSigma,
		"FRAME_DELAY":    &c.FrameDelay,
	}
	ints := map[string]*int{
		"DILATE_WINDOW":     &c.DilateWindow,
		"DILATE_ITERATIONS": &c.DilateIterations,
		"BLUR_KERNEL_SIZE":  &c.BlurKernelSize,
		"ZOOM_OFFSET_X":     &c.ZoomOffsetX,
		"ZOOM_OFFSET_Y":     &c.ZoomOffsetY,
		"ZOOM_SIZE":         &c.ZoomSize,
		"PANEL_CELL_SIZE":   &c.PanelCellSize,
	}

	for name, field := range floats {
		value, ok := lookup(envPrefix + name)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("environment variable %s%s: %w: %v", envPrefix, name, pipeline.ErrConfiguration, err)
		}
		*field = v
	}

	for name, field := range ints {
		value, ok := lookup(envPrefix + name)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("environment variable %s%s: %w: %v", envPrefix, name, pipeline.ErrConfiguration, err)
		}
		*field = v
	}

	return nil
}

// Validate checks the settings not owned by a pipeline stage. Stage
// parameters are checked when the stages are constructed.
func (c Config) Validate() error {
	if c.ZoomSize < 1 {
		return fmt.Errorf("zoom size must be positive, got %d: %w", c.ZoomSize, pipeline.ErrConfiguration)
	}
	if c.PanelCellSize < 16 {
		return fmt.Errorf("panel cell size must be at least 16, got %d: %w", c.PanelCellSize, pipeline.ErrConfiguration)
	}
	if c.FrameDelay <= 0 || c.FrameDelay > 60 {
		return fmt.Errorf("frame delay must be in (0, 60] seconds, got %v: %w", c.FrameDelay, pipeline.ErrConfiguration)
	}
	return nil
}
