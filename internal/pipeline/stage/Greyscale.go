package stage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rm-hull/edge-blur/internal/pipeline"
)

type GreyscaleStage struct{}

// Process converts the original image to intensity values using luminance calculation
func (s *GreyscaleStage) Process(f *pipeline.Frame) error {
	if f.Original == nil {
		return fmt.Errorf("greyscale: %w: no original image", pipeline.ErrInvariantViolation)
	}
	f.Grey = Greyscale(f.Original)
	return nil
}

func Greyscale(src *image.RGBA) *image.Gray {
	bounds := src.Bounds()
	gs := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.RGBAAt(x, y)
			// Calculate luminance using standard coefficients
			// Reference: https://en.wikipedia.org/wiki/Grayscale#Luma_coding_in_video_systems
			lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			gs.SetGray(x, y, color.Gray{Y: uint8(lum + 0.5)})
		}
	}
	return gs
}
