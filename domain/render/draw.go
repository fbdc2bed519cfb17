package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// strokeRect draws an outline of the given width centred on r's edges.
func strokeRect(dst draw.Image, r image.Rectangle, c color.NRGBA, width int) {
	if width < 1 {
		width = 1
	}
	lo := width / 2
	hi := width - lo
	src := image.NewUniform(c)
	bands := []image.Rectangle{
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Min.Y+hi),
		image.Rect(r.Min.X-lo, r.Max.Y-lo, r.Max.X+hi, r.Max.Y+hi),
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Min.X+hi, r.Max.Y+hi),
		image.Rect(r.Max.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Max.Y+hi),
	}
	for _, b := range bands {
		draw.Draw(dst, b, src, image.Point{}, draw.Over)
	}
}

// dashedRect draws an outline made of dash-long segments separated by equal gaps.
func dashedRect(dst draw.Image, r image.Rectangle, c color.NRGBA, width, dash int) {
	if dash < 1 {
		strokeRect(dst, r, c, width)
		return
	}
	if width < 1 {
		width = 1
	}
	lo := width / 2
	hi := width - lo
	src := image.NewUniform(c)
	for x := r.Min.X; x < r.Max.X; x += 2 * dash {
		x1 := min(x+dash, r.Max.X)
		draw.Draw(dst, image.Rect(x, r.Min.Y-lo, x1, r.Min.Y+hi), src, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(x, r.Max.Y-lo, x1, r.Max.Y+hi), src, image.Point{}, draw.Over)
	}
	for y := r.Min.Y; y < r.Max.Y; y += 2 * dash {
		y1 := min(y+dash, r.Max.Y)
		draw.Draw(dst, image.Rect(r.Min.X-lo, y, r.Min.X+hi, y1), src, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(r.Max.X-lo, y, r.Max.X+hi, y1), src, image.Point{}, draw.Over)
	}
}

// fillRect blends c over r with the given opacity.
func fillRect(dst draw.Image, r image.Rectangle, c color.NRGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(alpha*255 + 0.5)
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// labelFace picks the small face for zoomed-out views.
func labelFace(small bool) font.Face {
	if small {
		return basicfont.Face7x13
	}
	return inconsolata.Regular8x16
}

// drawLabel writes text with its baseline starting at (x, y).
func drawLabel(dst draw.Image, x, y int, text string, c color.NRGBA, face font.Face) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// screenRect converts float screen coordinates to a pixel rectangle.
func screenRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(int(x+0.5), int(y+0.5), int(x+w+0.5), int(y+h+0.5))
}
