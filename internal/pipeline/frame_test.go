package pipeline

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStage struct {
	name  string
	calls *[]string
	err   error
}

func (s *recordingStage) Process(f *Frame) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func TestNewFrame(t *testing.T) {
	t.Run("moves bounds to the origin", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 20, 13, 22))
		src.SetRGBA(10, 20, color.RGBA{1, 2, 3, 255})

		f := NewFrame(src)
		assert.Equal(t, image.Rect(0, 0, 3, 2), f.Bounds)
		assert.Equal(t, f.Bounds, f.Original.Bounds())
		assert.Equal(t, color.RGBA{1, 2, 3, 255}, f.Original.RGBAAt(0, 0))
	})

	t.Run("drops alpha without premultiplying", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		src.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 0})

		f := NewFrame(src)
		assert.Equal(t, color.RGBA{200, 100, 50, 255}, f.Original.RGBAAt(0, 0))
	})

	t.Run("expands greyscale input", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 2, 1))
		src.SetGray(1, 0, color.Gray{Y: 77})

		f := NewFrame(src)
		assert.Equal(t, color.RGBA{77, 77, 77, 255}, f.Original.RGBAAt(1, 0))
	})
}

func TestFrame_Pipeline(t *testing.T) {
	t.Run("runs stages in order", func(t *testing.T) {
		var calls []string
		f := &Frame{}
		err := f.Pipeline(
			&recordingStage{name: "a", calls: &calls},
			&recordingStage{name: "b", calls: &calls},
			&recordingStage{name: "c", calls: &calls},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, calls)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		var calls []string
		boom := errors.New("boom")
		f := &Frame{}
		err := f.Pipeline(
			&recordingStage{name: "a", calls: &calls},
			&recordingStage{name: "b", calls: &calls, err: boom},
			&recordingStage{name: "c", calls: &calls},
		)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"a", "b"}, calls)
	})
}

func TestMask(t *testing.T) {
	m := NewMask(3, 2, 3)
	assert.Equal(t, image.Rect(0, 0, 3, 2), m.Bounds())
	assert.Len(t, m.Pix, 18)

	m.Set(2, 1, 1, 0.5)
	assert.Equal(t, 0.5, m.At(2, 1, 1))
	assert.Equal(t, 0.0, m.At(2, 1, 0))

	m.Set(0, 0, 0, 1)
	m.Set(1, 0, 0, 0.5)
	g := m.Gray()
	assert.Equal(t, uint8(255), g.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(128), g.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(0), g.GrayAt(2, 1).Y)
}
