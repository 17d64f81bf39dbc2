package png

import (
	"bytes"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/kettek/apng"
)

// Animate encodes the images as a looping animated PNG, showing each for
// frameDelay seconds.
func Animate(images []image.Image, frameDelay float64) ([]byte, error) {

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(images)),
		LoopCount: 0,
	}

	for i, img := range images {
		a.Frames[i] = apng.Frame{
			Image:            clone.AsRGBA(img),
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
