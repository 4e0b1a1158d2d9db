package label

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// EmbeddedFont is the candidate name for the Go Bold face shipped in the binary.
const EmbeddedFont = "embedded:gobold"

// BitmapFont is reported by Renderer.Source when no candidate could be loaded.
const BitmapFont = "bitmap:7x13"

// DefaultFonts lists the bold serif/sans faces tried for panel labels,
// serif first since it matches manuscript body text. The embedded face comes
// last so a vector font is always available.
var DefaultFonts = []string{
	"/usr/share/fonts/liberation-serif/LiberationSerif-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSerif-Bold.ttf",
	"/usr/share/fonts/dejavu-sans-fonts/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/liberation-sans/LiberationSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"LiberationSerif-Bold.ttf",
	"DejaVuSans-Bold.ttf",
	"Arial Bold.ttf",
	EmbeddedFont,
}

// loadCandidate loads one font candidate at size pixels.
func loadCandidate(candidate string, size float64) (font.Face, string, error) {
	if candidate == EmbeddedFont {
		face, err := embeddedFace(size)
		return face, EmbeddedFont, err
	}

	path := candidate
	if !filepath.IsAbs(path) {
		found, err := findfont.Find(candidate)
		if err != nil {
			return nil, candidate, fmt.Errorf("font not installed: %w", err)
		}
		path = found
	}

	face, err := gg.LoadFontFace(path, size)
	if err != nil {
		return nil, path, err
	}
	return face, path, nil
}

func embeddedFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// resolveFace walks candidates in order and returns the first face that
// loads. bitmap is true when the 7x13 fallback had to be used.
func resolveFace(candidates []string, size float64, logger *log.Logger) (face font.Face, source string, bitmap bool) {
	for _, c := range candidates {
		f, src, err := loadCandidate(c, size)
		if err != nil {
			logger.Debug("font candidate unavailable", "font", src, "err", err)
			continue
		}
		logger.Debug("using label font", "font", src, "size", size)
		return f, src, false
	}

	logger.Debug("no label font available, using bitmap fallback", "candidates", len(candidates))
	return basicfont.Face7x13, BitmapFont, true
}
