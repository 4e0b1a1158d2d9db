package imaging

import (
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// ContentBounds returns the bounding box of the content area of img.
//
// Pixels whose luminance is below threshold (0-255) are content; everything
// else is treated as background. When no pixel qualifies the full image bounds
// are returned, so callers can crop unconditionally.
func ContentBounds(img image.Image, threshold uint8) image.Rectangle {
	bounds := img.Bounds()
	// imaging.Clone re-anchors sub-images at the origin
	binary := segment.Threshold(effect.Grayscale(imaging.Clone(img)), threshold)

	bb := binary.Bounds()
	minX, minY := bb.Max.X, bb.Max.Y
	maxX, maxY := bb.Min.X-1, bb.Min.Y-1
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			if binary.GrayAt(x, y).Y != 0 {
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
		return bounds
	}

	return image.Rect(minX, minY, maxX+1, maxY+1).Add(bounds.Min.Sub(bb.Min))
}

// ExpandRect grows r by margin pixels on every side, clamped to limit.
func ExpandRect(r image.Rectangle, margin int, limit image.Rectangle) image.Rectangle {
	return r.Inset(-margin).Intersect(limit)
}

// CropResult describes a content crop.
type CropResult struct {
	// Image is the cropped (and possibly downscaled) image.
	Image image.Image

	// Region is the crop rectangle in source coordinates.
	Region image.Rectangle

	OriginalWidth  int
	OriginalHeight int
	Width          int
	Height         int
}

// AreaSavedPercent reports how much of the original pixel area was removed.
func (r *CropResult) AreaSavedPercent() float64 {
	orig := float64(r.OriginalWidth * r.OriginalHeight)
	if orig == 0 {
		return 0
	}
	return (1 - float64(r.Width*r.Height)/orig) * 100
}

// CropToContent crops img to its content area plus margin and, when maxWidth
// and maxHeight are positive, shrinks the result to fit within them keeping
// the aspect ratio.
func CropToContent(img image.Image, threshold uint8, margin, maxWidth, maxHeight int) *CropResult {
	bounds := img.Bounds()
	region := ExpandRect(ContentBounds(img, threshold), margin, bounds)

	var out image.Image = imaging.Crop(img, region)
	if maxWidth > 0 && maxHeight > 0 {
		out = FitWithin(out, maxWidth, maxHeight)
	}

	return &CropResult{
		Image:          out,
		Region:         region,
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		Width:          out.Bounds().Dx(),
		Height:         out.Bounds().Dy(),
	}
}

// FitWithin downscales img so that it fits inside maxWidth x maxHeight while
// keeping its aspect ratio. Images that already fit are returned unchanged.
func FitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Lanczos3)
}

// CropOptions configures CropFile.
type CropOptions struct {
	// Threshold is the gray level below which a pixel is content.
	Threshold uint8

	// Margin is kept around the content, in pixels.
	Margin int

	// MaxWidth and MaxHeight bound the output; zero disables resizing.
	MaxWidth  int
	MaxHeight int
}

// CropFile crops the image at input to its content and saves it at output,
// creating output's directory when missing. output may equal input.
func CropFile(input, output string, opts CropOptions, save SaveOptions) (*CropResult, error) {
	img, err := Open(input)
	if err != nil {
		return nil, err
	}
	res := CropToContent(img, opts.Threshold, opts.Margin, opts.MaxWidth, opts.MaxHeight)

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, &WriteError{Path: output, Err: err}
	}
	if err := Save(res.Image, output, save); err != nil {
		return nil, err
	}
	return res, nil
}
