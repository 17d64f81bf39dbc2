// Package panel lays out the intermediate images of a run as a captioned grid.
package panel

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/rm-hull/edge-blur/internal/pipeline"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Columns     = 3
	titleHeight = 20
)

type Tile struct {
	Title string
	Image image.Image
}

// Tiles returns the nine diagnostic views of f in display order. Missing
// stages produce tiles with a title and no image.
func Tiles(f *pipeline.Frame, zoom image.Rectangle) []Tile {
	mask := Tile{Title: "5) Edge mask"}
	if f.Mask != nil {
		mask.Image = f.Mask.Gray()
	}

	return []Tile{
		rgbaTile("1) Original image", f.Original),
		grayTile("2) Greyscale", f.Grey),
		grayTile("3) Edges (Canny)", f.Edges),
		grayTile("4) Dilated edges", f.Dilated),
		mask,
		rgbaTile("6) Global blur", f.Blurred),
		rgbaTile("7) Final result", f.Result),
		cropTile("8) Edge zoom (original)", f.Original, zoom),
		cropTile("9) Edge zoom (smoothed)", f.Result, zoom),
	}
}

// Sequence returns the full-size stage images in pipeline order.
func Sequence(f *pipeline.Frame) []image.Image {
	var images []image.Image
	for _, t := range Tiles(f, image.Rectangle{})[:7] {
		if t.Image != nil {
			images = append(images, t.Image)
		}
	}
	return images
}

// Render draws tiles into a grid of cellSize squares, each under a title bar.
func Render(tiles []Tile, cellSize int) *image.RGBA {
	rows := (len(tiles) + Columns - 1) / Columns
	out := image.NewRGBA(image.Rect(0, 0, Columns*cellSize, rows*(cellSize+titleHeight)))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, tile := range tiles {
		x := (i % Columns) * cellSize
		y := (i / Columns) * (cellSize + titleHeight)

		title := image.Rect(x, y, x+cellSize, y+titleHeight)
		drawTitle(out.SubImage(title).(*image.RGBA), tile.Title)

		if tile.Image != nil {
			fit(out, image.Rect(x, y+titleHeight, x+cellSize, y+titleHeight+cellSize), tile.Image)
		}
	}
	return out
}

func drawTitle(dst *image.RGBA, title string) {
	bounds := dst.Bounds()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	x := max(bounds.Min.X, bounds.Min.X+(bounds.Dx()-d.MeasureString(title).Ceil())/2)
	d.Dot = fixed.P(x, bounds.Min.Y+14)
	d.DrawString(title)
}

// The helpers below keep typed nil pointers out of Tile.Image.

func rgbaTile(title string, img *image.RGBA) Tile {
	if img == nil {
		return Tile{Title: title}
	}
	return Tile{Title: title, Image: img}
}

func grayTile(title string, img *image.Gray) Tile {
	if img == nil {
		return Tile{Title: title}
	}
	return Tile{Title: title, Image: img}
}

func cropTile(title string, img *image.RGBA, r image.Rectangle) Tile {
	if img == nil || r.Empty() {
		return Tile{Title: title}
	}
	return Tile{Title: title, Image: transform.Crop(img, r)}
}
