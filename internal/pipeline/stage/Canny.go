package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/rm-hull/edge-blur/internal/pipeline"
)

const (
	edgeOff = 0
	edgeOn  = 255
)

// per-pixel classification after non-maximum suppression
const (
	weakEdge   = 1
	strongEdge = 2
)

type CannyStage struct {
	Low  float64
	High float64
}

func NewCannyStage(low, high float64) (*CannyStage, error) {
	if low < 0 || high < 0 {
		return nil, fmt.Errorf("canny: %w: thresholds must not be negative (low=%v, high=%v)", pipeline.ErrConfiguration, low, high)
	}
	if low > high {
		return nil, fmt.Errorf("canny: %w: low threshold %v exceeds high threshold %v", pipeline.ErrConfiguration, low, high)
	}
	return &CannyStage{Low: low, High: high}, nil
}

// Process detects edges in the greyscale image
// Gradient magnitudes below Low are never edges, those above High always are,
// and the ones in between only when connected to a strong edge
func (s *CannyStage) Process(f *pipeline.Frame) error {
	if f.Grey == nil {
		return fmt.Errorf("canny: %w: no greyscale image", pipeline.ErrInvariantViolation)
	}
	f.Edges = Canny(f.Grey, s.Low, s.High)
	return nil
}

// Canny returns a binary edge map (0 or 255) with the same bounds as src.
// Gradients come from a 3x3 Sobel operator over a replicated border and are
// measured with the L1 norm.
func Canny(src *image.Gray, low, high float64) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(bounds)
	if w == 0 || h == 0 {
		return out
	}

	at := func(x, y int) float64 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return float64(src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])
	}

	mag := make([]float64, w*h)
	dir := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			mag[y*w+x] = math.Abs(gx) + math.Abs(gy)
			dir[y*w+x] = sector(gx, gy)
		}
	}

	magAt := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	// non-maximum suppression, then classify against the thresholds
	class := make([]uint8, w*h)
	stack := make([]int, 0, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := mag[y*w+x]
			if m <= low {
				continue
			}

			var before, after float64
			d := dir[y*w+x]
			switch d {
			case 0:
				before, after = magAt(x-1, y), magAt(x+1, y)
			case 45:
				before, after = magAt(x-1, y-1), magAt(x+1, y+1)
			case 90:
				before, after = magAt(x, y-1), magAt(x, y+1)
			default:
				before, after = magAt(x+1, y-1), magAt(x-1, y+1)
			}

			if localMax(d, m, before, after) {
				if m > high {
					class[y*w+x] = strongEdge
					stack = append(stack, y*w+x)
				} else {
					class[y*w+x] = weakEdge
				}
			}
		}
	}

	// hysteresis: promote weak pixels 8-connected to a strong one
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if class[ny*w+nx] == weakEdge {
					class[ny*w+nx] = strongEdge
					stack = append(stack, ny*w+nx)
				}
			}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(edgeOff)
			if class[y*w+x] == strongEdge {
				v = edgeOn
			}
			out.Pix[out.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)] = v
		}
	}
	return out
}

// localMax reports whether a magnitude survives non-maximum suppression.
// Horizontal and vertical gradients are strict on one side only, so a ridge
// two pixels wide keeps one of them. Diagonal gradients are strict on both.
func localMax(sector uint8, m, before, after float64) bool {
	if sector == 45 || sector == 135 {
		return m > before && m > after
	}
	return m > before && m >= after
}

// sector quantises the gradient direction to 0, 45, 90 or 135 degrees.
// The y axis points down, so 45 runs from top-left to bottom-right.
func sector(gx, gy float64) uint8 {
	angle := math.Atan2(gy, gx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return 0
	case angle < 67.5:
		return 45
	case angle < 112.5:
		return 90
	default:
		return 135
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
