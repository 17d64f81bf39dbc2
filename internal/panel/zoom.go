package panel

import "image"

// ZoomRegion picks the crop shown in the zoom tiles: a size x size square
// whose top-left corner sits offsetX/offsetY pixels in from the right/bottom
// edges. The square is clamped to bounds. If nothing of it remains inside the
// image, the square is anchored at the bottom-right corner instead.
func ZoomRegion(bounds image.Rectangle, offsetX, offsetY, size int) image.Rectangle {
	x0 := max(bounds.Max.X-offsetX, bounds.Min.X)
	y0 := max(bounds.Max.Y-offsetY, bounds.Min.Y)

	r := image.Rect(x0, y0, x0+size, y0+size).Intersect(bounds)
	if !r.Empty() {
		return r
	}

	return image.Rect(
		max(bounds.Max.X-size, bounds.Min.X),
		max(bounds.Max.Y-size, bounds.Min.Y),
		bounds.Max.X,
		bounds.Max.Y,
	)
}
