package render

import (
	"image"
	"image/color"

	"github.com/milk9111/animfold/anim"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

var placeholderPalette = []color.RGBA{
	colornames.Cornflowerblue,
	colornames.Goldenrod,
	colornames.Mediumseagreen,
	colornames.Tomato,
	colornames.Orchid,
	colornames.Lightslategray,
}

// Placeholder paints a sheet covering every sprite rect of the set, one
// color per clip, with an outline and the pivot marked. It stands in for
// textures that are missing on disk.
func Placeholder(set *anim.SetResource) *image.RGBA {
	var bounds image.Rectangle
	for _, a := range set.Anims {
		for _, s := range a.Samples {
			bounds = bounds.Union(s.Sprite.Rect)
		}
	}
	if bounds.Empty() {
		bounds = image.Rect(0, 0, 1, 1)
	}

	img := image.NewRGBA(image.Rect(0, 0, bounds.Max.X, bounds.Max.Y))
	for i, a := range set.Anims {
		fill := placeholderPalette[i%len(placeholderPalette)]
		for j, s := range a.Samples {
			r := s.Sprite.Rect
			if r.Empty() {
				continue
			}
			c := fill
			if j%2 == 1 {
				c = darken(fill)
			}
			draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
			outline(img, r, colornames.Black)
			p := r.Min.Add(s.Sprite.Pivot)
			if p.In(r) {
				img.SetRGBA(p.X, p.Y, colornames.White)
			}
		}
	}
	return img
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R * 3 / 4, G: c.G * 3 / 4, B: c.B * 3 / 4, A: c.A}
}

func outline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}
