package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/edge-blur/internal/pipeline"
)

// Window is a structuring element anchored at its centre.
type Window struct {
	Width  int
	Height int
	Cells  []bool
}

// RectWindow returns a width x height window with every cell set.
func RectWindow(width, height int) Window {
	cells := make([]bool, width*height)
	for i := range cells {
		cells[i] = true
	}
	return Window{Width: width, Height: height, Cells: cells}
}

func (w Window) Validate() error {
	if w.Width < 1 || w.Height < 1 || w.Width%2 == 0 || w.Height%2 == 0 {
		return fmt.Errorf("dilate: %w: window must have positive odd dimensions, got %dx%d", pipeline.ErrConfiguration, w.Width, w.Height)
	}
	if len(w.Cells) != w.Width*w.Height {
		return fmt.Errorf("dilate: %w: window has %d cells, expected %d", pipeline.ErrConfiguration, len(w.Cells), w.Width*w.Height)
	}
	for _, on := range w.Cells {
		if on {
			return nil
		}
	}
	return fmt.Errorf("dilate: %w: window has no cells set", pipeline.ErrConfiguration)
}

type DilateStage struct {
	Window     Window
	Iterations int
}

func NewDilateStage(window Window, iterations int) (*DilateStage, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if iterations < 0 {
		return nil, fmt.Errorf("dilate: %w: iterations must not be negative, got %d", pipeline.ErrConfiguration, iterations)
	}
	return &DilateStage{Window: window, Iterations: iterations}, nil
}

// Process thickens the edge map into a band by repeated dilation
func (s *DilateStage) Process(f *pipeline.Frame) error {
	if f.Edges == nil {
		return fmt.Errorf("dilate: %w: no edge map", pipeline.ErrInvariantViolation)
	}
	f.Dilated = Dilate(f.Edges, s.Window, s.Iterations)
	return nil
}

// Dilate applies the window iterations times. Pixels outside the image count
// as zero. With zero iterations the result is a copy of src.
func Dilate(src *image.Gray, window Window, iterations int) *image.Gray {
	current := cloneGray(src)
	for i := 0; i < iterations; i++ {
		current = dilateOnce(current, window)
	}
	return current
}

func dilateOnce(src *image.Gray, window Window) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	ax, ay := window.Width/2, window.Height/2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var peak uint8
			for wy := 0; wy < window.Height; wy++ {
				for wx := 0; wx < window.Width; wx++ {
					if !window.Cells[wy*window.Width+wx] {
						continue
					}
					p := image.Pt(x+wx-ax, y+wy-ay)
					if !p.In(bounds) {
						continue
					}
					if v := src.Pix[src.PixOffset(p.X, p.Y)]; v > peak {
						peak = v
					}
				}
			}
			out.Pix[out.PixOffset(x, y)] = peak
		}
	}
	return out
}

func cloneGray(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)]
		copy(out.Pix[out.PixOffset(bounds.Min.X, y):], row)
	}
	return out
}
