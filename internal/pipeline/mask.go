package pipeline

import (
	"image"
	"image/color"
	"math"
)

// Mask is a grid of blend weights in [0, 1], with Channels values per pixel
// stored interleaved in row-major order.
type Mask struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64
}

func NewMask(width, height, channels int) *Mask {
	return &Mask{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float64, width*height*channels),
	}
}

func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m *Mask) offset(x, y, c int) int {
	return (y*m.Width+x)*m.Channels + c
}

func (m *Mask) At(x, y, c int) float64 {
	return m.Pix[m.offset(x, y, c)]
}

func (m *Mask) Set(x, y, c int, v float64) {
	m.Pix[m.offset(x, y, c)] = v
}

// Gray renders the first channel as an 8-bit image, mapping 1.0 to white.
func (m *Mask) Gray() *image.Gray {
	out := image.NewGray(m.Bounds())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := math.Round(m.At(x, y, 0) * 255)
			out.SetGray(x, y, color.Gray{Y: uint8(math.Max(0, math.Min(255, v)))})
		}
	}
	return out
}
