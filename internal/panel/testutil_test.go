package panel

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// writePanel writes a solid color image named name into dir, encoded by
// extension (JPEG or PNG), and returns its path.
func writePanel(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	img := solidImage(w, h, c)
	if strings.HasSuffix(strings.ToLower(name), ".png") {
		require.NoError(t, png.Encode(f, img))
	} else {
		require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
	}
	return path
}

func panelOf(label string, w, h int) *Panel {
	return &Panel{Label: label, Path: label + ".png", Image: solidImage(w, h, color.Gray{128})}
}

// recordingLabeler captures Render calls.
type recordingLabeler struct {
	calls []Placement
}

func (r *recordingLabeler) Render(_ draw.Image, text string, origin image.Point) {
	r.calls = append(r.calls, Placement{Label: text, Origin: origin})
}
