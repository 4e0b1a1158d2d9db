package label

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
)

// Options configures a Renderer.
type Options struct {
	// FontSize is the label height in pixels.
	FontSize float64

	// Margin insets the text anchor from the panel origin on both axes.
	Margin int

	// OutlineWidth is the halo radius in pixels; zero draws no halo.
	OutlineWidth int

	OutlineColor color.Color
	FillColor    color.Color

	// Fonts lists font candidates in preference order (see package doc).
	Fonts []string
}

// DefaultOptions returns the manuscript label style: 200px bold letters,
// inset 80px, with a 5px white halo around black fill, using the first of
// DefaultFonts that loads.
func DefaultOptions() Options {
	return Options{
		FontSize:     200,
		Margin:       80,
		OutlineWidth: 5,
		OutlineColor: color.White,
		FillColor:    color.Black,
		Fonts:        append([]string(nil), DefaultFonts...),
	}
}

// Renderer draws outlined labels. It is not safe for concurrent use; create
// one per composite.
type Renderer struct {
	opts   Options
	face   font.Face
	source string
	bitmap bool
	masks  map[string]*image.Alpha
}

// NewRenderer resolves the label font and returns a ready Renderer. It never
// fails: missing fonts degrade to the bitmap face.
func NewRenderer(opts Options, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	if opts.OutlineColor == nil {
		opts.OutlineColor = color.White
	}
	if opts.FillColor == nil {
		opts.FillColor = color.Black
	}

	face, source, bitmap := resolveFace(opts.Fonts, opts.FontSize, logger)
	return &Renderer{
		opts:   opts,
		face:   face,
		source: source,
		bitmap: bitmap,
		masks:  make(map[string]*image.Alpha),
	}
}

// Source names the font in use: a file path, EmbeddedFont, or BitmapFont.
func (r *Renderer) Source() string { return r.source }

// Anchor returns the top-left corner of the text for a panel at origin.
func (r *Renderer) Anchor(origin image.Point) image.Point {
	return origin.Add(image.Pt(r.opts.Margin, r.opts.Margin))
}

// Bounds returns the area of dst that Render touches for text at origin,
// halo included, before clipping to dst.
func (r *Renderer) Bounds(text string, origin image.Point) image.Rectangle {
	m := r.mask(text)
	return m.Bounds().Add(r.Anchor(origin)).Inset(-r.opts.OutlineWidth)
}

// Render draws text onto dst for a panel whose top-left corner is origin.
// Drawing is clipped to dst's bounds.
func (r *Renderer) Render(dst draw.Image, text string, origin image.Point) {
	if text == "" {
		return
	}
	m := r.mask(text)
	at := r.Anchor(origin)

	outline := image.NewUniform(r.opts.OutlineColor)
	w := r.opts.OutlineWidth
	for dx := -w; dx <= w; dx++ {
		for dy := -w; dy <= w; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			stamp(dst, m, at.Add(image.Pt(dx, dy)), outline)
		}
	}

	stamp(dst, m, at, image.NewUniform(r.opts.FillColor))
}

func (r *Renderer) mask(text string) *image.Alpha {
	if m, ok := r.masks[text]; ok {
		return m
	}
	var m *image.Alpha
	if r.bitmap {
		m = bitmapMask(r.face, text, r.opts.FontSize)
	} else {
		m = vectorMask(r.face, text)
	}
	r.masks[text] = m
	return m
}

func stamp(dst draw.Image, m *image.Alpha, at image.Point, src image.Image) {
	rect := image.Rectangle{Min: at, Max: at.Add(m.Bounds().Size())}
	draw.DrawMask(dst, rect, src, image.Point{}, m, m.Bounds().Min, draw.Over)
}
