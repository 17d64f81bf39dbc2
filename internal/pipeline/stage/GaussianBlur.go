package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/rm-hull/edge-blur/internal/pipeline"
)

type GaussianBlurStage struct {
	KernelSize int
	Sigma      float64
}

func NewGaussianBlurStage(kernelSize int, sigma float64) (*GaussianBlurStage, error) {
	if kernelSize < 1 || kernelSize%2 == 0 {
		return nil, fmt.Errorf("gaussian blur: %w: kernel size must be a positive odd integer, got %d", pipeline.ErrConfiguration, kernelSize)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("gaussian blur: %w: sigma must not be negative, got %v", pipeline.ErrConfiguration, sigma)
	}
	return &GaussianBlurStage{KernelSize: kernelSize, Sigma: sigma}, nil
}

// Process applies a Gaussian blur to the whole original image
// A zero Sigma is derived from the kernel size
func (s *GaussianBlurStage) Process(f *pipeline.Frame) error {
	if f.Original == nil {
		return fmt.Errorf("gaussian blur: %w: no original image", pipeline.ErrInvariantViolation)
	}
	f.Blurred = GaussianBlur(f.Original, s.KernelSize, s.Sigma)
	return nil
}

// GaussianSigma is the standard deviation used when none is given:
// 0.3*((size-1)*0.5 - 1) + 0.8
func GaussianSigma(kernelSize int) float64 {
	return 0.3*((float64(kernelSize)-1)*0.5-1) + 0.8
}

// GaussianKernel returns the normalised 1-D kernel of the given odd size.
func GaussianKernel(kernelSize int, sigma float64) []float64 {
	if sigma <= 0 {
		sigma = GaussianSigma(kernelSize)
	}
	k := make([]float64, kernelSize)
	centre := kernelSize / 2
	sum := 0.0
	for i := range k {
		x := float64(i - centre)
		k[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// GaussianBlur smooths each channel with a Gaussian kernel. Pixels beyond the
// border repeat the edge pixel rather than reflecting about it, so results
// within kernelSize/2 of the border differ from a reflect-101 blur.
//
// The kernel is applied as a single 2-D pass so that the result is rounded
// once; convolution truncates, and the 0.5 bias turns that into rounding.
func GaussianBlur(src *image.RGBA, kernelSize int, sigma float64) *image.RGBA {
	weights := GaussianKernel(kernelSize, sigma)
	k := convolution.NewKernel(kernelSize, kernelSize)
	for y, wy := range weights {
		for x, wx := range weights {
			k.Matrix[y*kernelSize+x] = wy * wx
		}
	}

	return convolution.Convolve(src, k, &convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true})
}
