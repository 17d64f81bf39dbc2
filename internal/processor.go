package internal

import (
	"fmt"
	"image"
	"time"

	"github.com/rm-hull/edge-blur/internal/config"
	"github.com/rm-hull/edge-blur/internal/models"
	"github.com/rm-hull/edge-blur/internal/panel"
	"github.com/rm-hull/edge-blur/internal/pipeline"
	"github.com/rm-hull/edge-blur/internal/pipeline/stage"
	"github.com/rm-hull/edge-blur/internal/png"
	"github.com/sirupsen/logrus"
)

// Processor runs the edge blur pipeline for one image at a time. It holds no
// per-run state, so a single Processor may serve concurrent callers.
type Processor struct {
	cfg    config.Config
	logger *logrus.Logger
	stages []pipeline.PipelineStage
}

func NewProcessor(cfg config.Config, logger *logrus.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	canny, err := stage.NewCannyStage(cfg.LowThreshold, cfg.HighThreshold)
	if err != nil {
		return nil, err
	}

	window := stage.RectWindow(cfg.DilateWindow, cfg.DilateWindow)
	dilate, err := stage.NewDilateStage(window, cfg.DilateIterations)
	if err != nil {
		return nil, err
	}

	blur, err := stage.NewGaussianBlurStage(cfg.BlurKernelSize, cfg.BlurSigma)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		cfg:    cfg,
		logger: logger,
	}
	p.stages = []pipeline.PipelineStage{
		p.timed("greyscale", &stage.GreyscaleStage{}),
		p.timed("canny", canny),
		p.timed("dilate", dilate),
		p.timed("mask", &stage.MaskStage{}),
		p.timed("gaussian_blur", blur),
		p.timed("composite", &stage.CompositeStage{}),
	}

	logger.WithFields(logrus.Fields{
		"low_threshold":     cfg.LowThreshold,
		"high_threshold":    cfg.HighThreshold,
		"dilate_window":     cfg.DilateWindow,
		"dilate_iterations": cfg.DilateIterations,
		"blur_kernel_size":  cfg.BlurKernelSize,
		"blur_sigma":        blurSigma(cfg),
	}).Debug("Pipeline configured")

	return p, nil
}

func (p *Processor) Config() config.Config {
	return p.cfg
}

// Process runs a single forward pass over img and returns every intermediate.
func (p *Processor) Process(img image.Image) (*pipeline.Frame, error) {
	startTime := time.Now()

	frame := pipeline.NewFrame(img)
	if frame.Bounds.Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", pipeline.ErrDecode)
	}

	if err := frame.Pipeline(p.stages...); err != nil {
		return nil, fmt.Errorf("failed to process image pipeline: %w", err)
	}

	stats := p.Summarise(frame)
	p.logger.WithFields(logrus.Fields{
		"width":          stats.Width,
		"height":         stats.Height,
		"edge_pixels":    stats.EdgePixels,
		"dilated_pixels": stats.DilatedPixels,
		"elapsed":        time.Since(startTime).String(),
	}).Info("Edge blur complete")

	return frame, nil
}

func (p *Processor) ZoomRegion(frame *pipeline.Frame) image.Rectangle {
	return panel.ZoomRegion(frame.Bounds, p.cfg.ZoomOffsetX, p.cfg.ZoomOffsetY, p.cfg.ZoomSize)
}

// Panel renders the 3x3 diagnostic grid for a processed frame.
func (p *Processor) Panel(frame *pipeline.Frame) *image.RGBA {
	return panel.Render(panel.Tiles(frame, p.ZoomRegion(frame)), p.cfg.PanelCellSize)
}

// Animation encodes the stage images of a processed frame as an animated PNG.
func (p *Processor) Animation(frame *pipeline.Frame) ([]byte, error) {
	return png.Animate(panel.Sequence(frame), p.cfg.FrameDelay)
}

func (p *Processor) Summarise(frame *pipeline.Frame) models.Stats {
	zoom := p.ZoomRegion(frame)
	stats := models.Stats{
		Width:         frame.Bounds.Dx(),
		Height:        frame.Bounds.Dy(),
		EdgePixels:    countSet(frame.Edges),
		DilatedPixels: countSet(frame.Dilated),
		Zoom: models.Region{
			X:      zoom.Min.X,
			Y:      zoom.Min.Y,
			Width:  zoom.Dx(),
			Height: zoom.Dy(),
		},
	}
	if total := stats.Width * stats.Height; total > 0 {
		stats.Coverage = float64(stats.DilatedPixels) / float64(total)
	}
	return stats
}

func (p *Processor) timed(name string, s pipeline.PipelineStage) pipeline.PipelineStage {
	return &timedStage{name: name, stage: s, logger: p.logger}
}

type timedStage struct {
	name   string
	stage  pipeline.PipelineStage
	logger *logrus.Logger
}

func (s *timedStage) Process(f *pipeline.Frame) error {
	startTime := time.Now()
	if err := s.stage.Process(f); err != nil {
		return fmt.Errorf("stage %s: %w", s.name, err)
	}
	s.logger.WithFields(logrus.Fields{
		"stage":   s.name,
		"elapsed": time.Since(startTime).String(),
	}).Debug("Stage complete")
	return nil
}

func countSet(img *image.Gray) int {
	if img == nil {
		return 0
	}
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)] != 0 {
				n++
			}
		}
	}
	return n
}

func blurSigma(cfg config.Config) float64 {
	if cfg.BlurSigma > 0 {
		return cfg.BlurSigma
	}
	return stage.GaussianSigma(cfg.BlurKernelSize)
}
