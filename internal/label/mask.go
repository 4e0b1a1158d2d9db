package label

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// vectorMask rasterizes text with face into an alpha mask whose top-left
// corner is the text's top-left (ascender line).
func vectorMask(face font.Face, text string) *image.Alpha {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	w, _ := dc.MeasureString(text)
	// leave room for glyph overhang past the advance width
	width := int(math.Ceil(w)) + height/8

	dc = gg.NewContext(width, height)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawString(text, 0, float64(ascent))

	return toAlpha(dc.Image())
}

// bitmapMask draws text with face (a fixed-size bitmap face) and scales the
// result to size pixels high with nearest-neighbour sampling so the letter
// stays crisp.
func bitmapMask(face font.Face, text string, size float64) *image.Alpha {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := metrics.Height.Ceil()

	d := &font.Drawer{Face: face}
	width := d.MeasureString(text).Ceil()
	if width == 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}

	small := image.NewAlpha(image.Rect(0, 0, width, height))
	d.Dst = small
	d.Src = image.Opaque
	d.Dot = fixed.P(0, ascent)
	d.DrawString(text)

	target := int(math.Round(size))
	if target <= height {
		return small
	}
	return toAlpha(imaging.Resize(small, 0, target, imaging.NearestNeighbor))
}

func toAlpha(img image.Image) *image.Alpha {
	b := img.Bounds()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(mask, mask.Bounds(), img, b.Min, draw.Src)
	return mask
}
