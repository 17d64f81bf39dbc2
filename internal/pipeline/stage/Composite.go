package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/rm-hull/edge-blur/internal/pipeline"
)

type CompositeStage struct{}

// Process blends the blurred image into the original wherever the mask is set
func (s *CompositeStage) Process(f *pipeline.Frame) error {
	if f.Broadcast == nil || f.Blurred == nil || f.Original == nil {
		return fmt.Errorf("composite: %w: mask, blurred and original images are all required", pipeline.ErrInvariantViolation)
	}
	result, err := Composite(f.Broadcast, f.Blurred, f.Original)
	if err != nil {
		return err
	}
	f.Result = result
	return nil
}

// Composite computes round(mask*blurred + (1-mask)*original) per channel.
// The mask needs one weight per colour channel and all three inputs must
// have the same size.
func Composite(mask *pipeline.Mask, blurred, original *image.RGBA) (*image.RGBA, error) {
	bounds := original.Bounds()
	if blurred.Bounds().Size() != bounds.Size() || mask.Bounds().Size() != bounds.Size() {
		return nil, fmt.Errorf("composite: %w: shape mismatch (mask=%v, blurred=%v, original=%v)",
			pipeline.ErrInvariantViolation, mask.Bounds().Size(), blurred.Bounds().Size(), bounds.Size())
	}
	if mask.Channels != 3 {
		return nil, fmt.Errorf("composite: %w: mask has %d channels, expected 3", pipeline.ErrInvariantViolation, mask.Channels)
	}

	bb := blurred.Bounds()
	out := image.NewRGBA(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			oi := original.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			bi := blurred.PixOffset(bb.Min.X+x, bb.Min.Y+y)
			di := out.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			for c := 0; c < 3; c++ {
				m := mask.At(x, y, c)
				v := m*float64(blurred.Pix[bi+c]) + (1-m)*float64(original.Pix[oi+c])
				out.Pix[di+c] = uint8(math.Max(0, math.Min(255, math.Round(v))))
			}
			out.Pix[di+3] = 255
		}
	}
	return out, nil
}
