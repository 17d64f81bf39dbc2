package panel

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// fit scales src into box with a Catmull-Rom filter, preserving the aspect
// ratio and centring the result.
func fit(dst draw.Image, box image.Rectangle, src image.Image) {
	sb := src.Bounds()
	if sb.Empty() || box.Empty() {
		return
	}

	scale := math.Min(float64(box.Dx())/float64(sb.Dx()), float64(box.Dy())/float64(sb.Dy()))
	w := max(1, int(math.Round(float64(sb.Dx())*scale)))
	h := max(1, int(math.Round(float64(sb.Dy())*scale)))

	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	draw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, draw.Over, nil)
}
