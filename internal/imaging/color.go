package imaging

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Background returns the color of the top-left pixel, which figure renderers
// reliably leave as page background.
func Background(img image.Image) color.Color {
	b := img.Bounds()
	return img.At(b.Min.X, b.Min.Y)
}

// ChannelDistance returns the largest per-channel difference between a and b
// on 8-bit channels, scaled to 0 (identical) .. 1 (black vs white). Fully
// transparent colors are compared as white, matching how they print.
func ChannelDistance(a, b color.Color) float64 {
	return channelDistance(toColorful(a), toColorful(b))
}

func channelDistance(a, b colorful.Color) float64 {
	ar, ag, ab := a.RGB255()
	br, bg, bb := b.RGB255()
	d := max(absDiff(ar, br), absDiff(ag, bg), absDiff(ab, bb))
	return float64(d) / 255
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func toColorful(c color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return cf
}

// DiffBounds returns the bounding box of all pixels whose ChannelDistance
// from bg exceeds tolerance, and false when every pixel is within tolerance.
func DiffBounds(img image.Image, bg color.Color, tolerance float64) (image.Rectangle, bool) {
	ref := toColorful(bg)
	bounds := img.Bounds()

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if channelDistance(toColorful(img.At(x, y)), ref) <= tolerance {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
