package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/edge-blur/internal/pipeline"
)

type MaskStage struct{}

// Process turns the dilated edge band into blend weights, one channel for
// display and a copy broadcast to every colour channel for blending
func (s *MaskStage) Process(f *pipeline.Frame) error {
	if f.Dilated == nil {
		return fmt.Errorf("mask: %w: no dilated edge map", pipeline.ErrInvariantViolation)
	}
	f.Mask = BuildMask(f.Dilated)
	f.Broadcast = Broadcast(f.Mask, 3)
	return nil
}

// BuildMask divides every pixel by 255.
func BuildMask(src *image.Gray) *pipeline.Mask {
	bounds := src.Bounds()
	m := pipeline.NewMask(bounds.Dx(), bounds.Dy(), 1)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
			m.Set(x, y, 0, float64(v)/255.0)
		}
	}
	return m
}

// Broadcast replicates the first channel of m across the given number of channels.
func Broadcast(m *pipeline.Mask, channels int) *pipeline.Mask {
	out := pipeline.NewMask(m.Width, m.Height, channels)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := m.At(x, y, 0)
			for c := 0; c < channels; c++ {
				out.Set(x, y, c, v)
			}
		}
	}
	return out
}
