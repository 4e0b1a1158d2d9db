package label

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newCanvas(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func isColor(img *image.RGBA, x, y int, want color.RGBA) bool {
	return img.RGBAAt(x, y) == want
}

// countColor counts pixels of exactly want inside r.
func countColor(img *image.RGBA, r image.Rectangle, want color.RGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if isColor(img, x, y, want) {
				n++
			}
		}
	}
	return n
}

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func bitmapOptions() Options {
	opts := DefaultOptions()
	opts.FontSize = 100
	opts.Fonts = []string{"/nonexistent/fonts/Missing-Bold.ttf", "NoSuchFont-Bold.ttf"}
	return opts
}

func TestNewRenderer_BitmapFallback(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())

	assert.Equal(t, BitmapFont, r.Source())
	assert.True(t, r.bitmap)
}

func TestNewRenderer_NoCandidates(t *testing.T) {
	opts := DefaultOptions()
	opts.Fonts = nil

	r := NewRenderer(opts, quietLogger())
	assert.Equal(t, BitmapFont, r.Source())
}

func TestNewRenderer_Embedded(t *testing.T) {
	opts := DefaultOptions()
	opts.Fonts = []string{"/nonexistent/Missing.ttf", EmbeddedFont}

	r := NewRenderer(opts, quietLogger())
	assert.Equal(t, EmbeddedFont, r.Source())
	assert.False(t, r.bitmap)
}

func TestNewRenderer_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRenderer(bitmapOptions(), nil)
	})
}

func TestRenderer_Anchor(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())

	assert.Equal(t, image.Pt(80, 80), r.Anchor(image.Pt(0, 0)))
	assert.Equal(t, image.Pt(900, 80), r.Anchor(image.Pt(820, 0)))
}

func TestRender_BitmapDrawsInsideBounds(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())
	canvas := newCanvas(400, 400, color.White)

	r.Render(canvas, "A", image.Pt(0, 0))

	bounds := r.Bounds("A", image.Pt(0, 0))
	require.True(t, bounds.Min.X >= 75 && bounds.Min.Y >= 75, "halo should start near the anchor, got %v", bounds)

	inside := countColor(canvas, bounds, black)
	total := countColor(canvas, canvas.Bounds(), black)
	assert.Greater(t, inside, 0, "label fill should be drawn")
	assert.Equal(t, total, inside, "no fill outside the label bounds")

	// the scaled bitmap glyph is roughly FontSize tall
	assert.InDelta(t, 100, bounds.Dy()-2*5, 2)
}

func TestRender_HaloOnDarkBackground(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())
	canvas := newCanvas(400, 400, color.Black)

	r.Render(canvas, "B", image.Pt(0, 0))

	assert.Greater(t, countColor(canvas, canvas.Bounds(), white), 0, "white halo should be visible on black")
	assert.True(t, isColor(canvas, 10, 10, black), "pixels away from the label stay untouched")
}

func TestRender_NoOutline(t *testing.T) {
	opts := bitmapOptions()
	opts.OutlineWidth = 0
	r := NewRenderer(opts, quietLogger())
	canvas := newCanvas(300, 300, color.Black)

	r.Render(canvas, "C", image.Pt(0, 0))

	assert.Equal(t, 0, countColor(canvas, canvas.Bounds(), white))
}

func TestRender_CustomColors(t *testing.T) {
	opts := bitmapOptions()
	opts.FillColor = color.RGBA{255, 0, 0, 255}
	opts.OutlineColor = color.RGBA{0, 0, 255, 255}
	r := NewRenderer(opts, quietLogger())
	canvas := newCanvas(300, 300, color.White)

	r.Render(canvas, "D", image.Pt(0, 0))

	assert.Greater(t, countColor(canvas, canvas.Bounds(), color.RGBA{255, 0, 0, 255}), 0)
	assert.Greater(t, countColor(canvas, canvas.Bounds(), color.RGBA{0, 0, 255, 255}), 0)
}

func TestRender_OffsetOrigin(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())
	canvas := newCanvas(1000, 400, color.White)

	r.Render(canvas, "B", image.Pt(500, 0))

	left := image.Rect(0, 0, 500, 400)
	assert.Equal(t, 0, countColor(canvas, left, black), "label for a panel at x=500 must not reach the left half")
	assert.Greater(t, countColor(canvas, image.Rect(580, 80, 1000, 400), black), 0)
}

func TestRender_ClipsAtCanvasEdge(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())
	canvas := newCanvas(120, 120, color.White)

	assert.NotPanics(t, func() {
		r.Render(canvas, "Z", image.Pt(0, 0))
	})
	assert.Greater(t, countColor(canvas, canvas.Bounds(), black), 0)
}

func TestRender_EmptyLabel(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())
	canvas := newCanvas(200, 200, color.White)

	r.Render(canvas, "", image.Pt(0, 0))

	assert.Equal(t, 0, countColor(canvas, canvas.Bounds(), black))
}

func TestRender_EmbeddedFont(t *testing.T) {
	opts := DefaultOptions()
	opts.FontSize = 120
	opts.Fonts = []string{EmbeddedFont}
	r := NewRenderer(opts, quietLogger())
	canvas := newCanvas(500, 400, color.White)

	r.Render(canvas, "A", image.Pt(0, 0))

	bounds := r.Bounds("A", image.Pt(0, 0))
	inside := countColor(canvas, bounds, black)
	assert.Greater(t, inside, 0)
	assert.Equal(t, countColor(canvas, canvas.Bounds(), black), inside)
}

func TestRenderer_MaskIsCached(t *testing.T) {
	r := NewRenderer(bitmapOptions(), quietLogger())

	first := r.mask("A")
	second := r.mask("A")
	assert.Same(t, first, second)
}

func TestDefaultOptions_TriesSystemFontsFirst(t *testing.T) {
	opts := DefaultOptions()

	require.Equal(t, DefaultFonts, opts.Fonts)
	assert.Contains(t, opts.Fonts[0], "Serif-Bold")
	assert.Equal(t, EmbeddedFont, opts.Fonts[len(opts.Fonts)-1])

	opts.Fonts[0] = "changed"
	assert.NotEqual(t, "changed", DefaultFonts[0])
}

func TestDefaultOptions_NeverFallsBackToBitmap(t *testing.T) {
	r := NewRenderer(DefaultOptions(), quietLogger())
	assert.NotEqual(t, BitmapFont, r.Source())
}
