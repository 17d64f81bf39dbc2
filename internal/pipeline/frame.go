package pipeline

import (
	"image"
	"image/color"
)

// Frame holds every intermediate image produced during a single run.
// Each stage fills exactly one slot and only reads the slots filled before it.
type Frame struct {
	Original  *image.RGBA
	Grey      *image.Gray
	Edges     *image.Gray
	Dilated   *image.Gray
	Mask      *Mask
	Broadcast *Mask
	Blurred   *image.RGBA
	Result    *image.RGBA
	Bounds    image.Rectangle
}

type PipelineStage interface {
	Process(f *Frame) error
}

// NewFrame copies img into an opaque RGBA image anchored at the origin.
// Alpha is discarded rather than premultiplied, so transparent pixels keep their colour.
func NewFrame(img image.Image) *Frame {
	src := img.Bounds()
	bounds := image.Rect(0, 0, src.Dx(), src.Dy())

	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(src.Min.X+x, src.Min.Y+y)).(color.NRGBA)
			rgba.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 255})
		}
	}

	return &Frame{
		Original: rgba,
		Bounds:   bounds,
	}
}

func (f *Frame) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(f); err != nil {
			return err
		}
	}
	return nil
}
