package panel

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	figimg "github.com/ironsheep/figtools/internal/imaging"
)

// Size is a pixel width and height.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// FallbackSize is the canonical size for figures without an A, B or C panel.
var FallbackSize = Size{Width: 1889, Height: 1200}

// referenceLabels define the canonical size, checked in this order.
var referenceLabels = []string{"A", "B", "C"}

// Panel is one decoded sub-image of a figure.
type Panel struct {
	Label string
	Path  string
	Image image.Image
}

// Size returns the panel's pixel dimensions.
func (p *Panel) Size() Size {
	b := p.Image.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// LoadPanels decodes every file in paths and returns the panels sorted by
// label. The first file that fails to decode aborts loading with a
// *DecodeError.
func LoadPanels(paths map[string]string) ([]*Panel, error) {
	labels := make([]string, 0, len(paths))
	for lbl := range paths {
		labels = append(labels, lbl)
	}
	sort.Strings(labels)

	panels := make([]*Panel, 0, len(labels))
	for _, lbl := range labels {
		img, err := figimg.Open(paths[lbl])
		if err != nil {
			return nil, &DecodeError{Label: lbl, Path: paths[lbl], Err: err}
		}
		panels = append(panels, &Panel{Label: lbl, Path: paths[lbl], Image: img})
	}
	return panels, nil
}

// CanonicalSize returns the size of the first of panels A, B, C present, or
// fallback when none is.
func CanonicalSize(panels []*Panel, fallback Size) Size {
	byLabel := make(map[string]*Panel, len(panels))
	for _, p := range panels {
		byLabel[p.Label] = p
	}
	for _, lbl := range referenceLabels {
		if p, ok := byLabel[lbl]; ok {
			return p.Size()
		}
	}
	return fallback
}

// Normalize resizes every panel to the canonical size with a Lanczos filter
// and returns the resized panels (sorted by label) with that size. The
// reference panel is resized too, so all outputs are guaranteed identical in
// size. Inputs are not modified.
func Normalize(panels []*Panel, fallback Size) ([]*Panel, Size) {
	size := CanonicalSize(panels, fallback)

	out := make([]*Panel, 0, len(panels))
	for _, p := range panels {
		out = append(out, &Panel{
			Label: p.Label,
			Path:  p.Path,
			Image: imaging.Resize(p.Image, size.Width, size.Height, imaging.Lanczos),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, size
}
