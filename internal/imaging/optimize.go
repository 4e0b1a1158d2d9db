package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// printWidthInches is the page width figures are scaled towards when they are
// too small for print at the target DPI.
const printWidthInches = 8

// WhitespaceTolerance counts a pixel as content when one of its channels
// differs from the background by more than 100 levels.
const WhitespaceTolerance = 100.0 / 255

// OptimizeOptions controls Optimize.
type OptimizeOptions struct {
	// Crop trims uniform background around the figure when true.
	Crop bool

	// Padding is kept around the trimmed content, in pixels.
	Padding int

	// Tolerance is the ChannelDistance from the background color above which
	// a pixel counts as content. Zero selects WhitespaceTolerance.
	Tolerance float64

	MaxWidth  int
	MaxHeight int
	DPI       int

	// Contrast is the relative contrast change (0.1 = +10%).
	Contrast float64

	// Sharpen is the sigma of the sharpening filter; zero disables it.
	Sharpen float64
}

// OptimizeResult describes what Optimize did.
type OptimizeResult struct {
	Image          image.Image
	OriginalWidth  int
	OriginalHeight int
	CroppedWidth   int
	CroppedHeight  int
	Width          int
	Height         int

	// Output, InputBytes and OutputBytes are set by OptimizeFile.
	Output      string
	InputBytes  int64
	OutputBytes int64
}

// SizeReductionPercent reports how much smaller the output file is than the
// input; negative when it grew.
func (r *OptimizeResult) SizeReductionPercent() float64 {
	if r.InputBytes == 0 {
		return 0
	}
	return 100 - float64(r.OutputBytes)*100/float64(r.InputBytes)
}

// Optimize prepares a figure for print: trim whitespace, resize towards the
// print resolution, then boost contrast and sharpness.
func Optimize(img image.Image, opts OptimizeOptions) *OptimizeResult {
	bounds := img.Bounds()
	res := &OptimizeResult{
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
	}

	out := img
	if opts.Crop {
		tol := opts.Tolerance
		if tol == 0 {
			tol = WhitespaceTolerance
		}
		out = TrimWhitespace(out, opts.Padding, tol)
	}
	res.CroppedWidth, res.CroppedHeight = out.Bounds().Dx(), out.Bounds().Dy()

	w, h := OptimalSize(res.CroppedWidth, res.CroppedHeight, opts.MaxWidth, opts.MaxHeight, opts.DPI)
	if w != res.CroppedWidth || h != res.CroppedHeight {
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}

	if opts.Contrast != 0 {
		out = adjust.Contrast(out, opts.Contrast)
	}
	if opts.Sharpen > 0 {
		out = imaging.Sharpen(out, opts.Sharpen)
	}

	res.Image = out
	res.Width, res.Height = out.Bounds().Dx(), out.Bounds().Dy()
	return res
}

// TrimWhitespace crops img to the pixels that differ from its background
// color, keeping padding pixels around them. A uniform image is returned
// unchanged.
func TrimWhitespace(img image.Image, padding int, tolerance float64) image.Image {
	box, ok := DiffBounds(img, Background(img), tolerance)
	if !ok {
		return img
	}
	return imaging.Crop(img, ExpandRect(box, padding, img.Bounds()))
}

// OptimalSize computes the print size for a width x height figure.
//
// Figures larger than maxWidth x maxHeight are scaled down to fit, preserving
// aspect ratio. Figures narrower than 80% of an 8-inch page at dpi are scaled
// up towards that width by at most 2x. Both results are rounded down to even
// numbers, and never below 2.
func OptimalSize(width, height, maxWidth, maxHeight, dpi int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}

	aspect := float64(width) / float64(height)
	newW, newH := width, height

	if maxWidth > 0 && maxHeight > 0 && (width > maxWidth || height > maxHeight) {
		if float64(width)/float64(maxWidth) > float64(height)/float64(maxHeight) {
			newW = maxWidth
			newH = int(float64(newW) / aspect)
		} else {
			newH = maxHeight
			newW = int(float64(newH) * aspect)
		}
	} else {
		target := float64(printWidthInches * dpi)
		if float64(width) < target*0.8 {
			scale := target / float64(width)
			if scale > 2 {
				scale = 2
			}
			newW = int(float64(width) * scale)
			newH = int(float64(height) * scale)
		}
	}

	newW = newW / 2 * 2
	newH = newH / 2 * 2
	if newW < 2 {
		newW = 2
	}
	if newH < 2 {
		newH = 2
	}
	return newW, newH
}

// OptimizedName returns the default output path for input:
// "dir/fig.png" becomes "dir/fig_optimized.png".
func OptimizedName(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_optimized" + ext
}

// OptimizeFile optimizes the figure at input and saves it at output,
// creating output's directory when missing. An empty output selects
// OptimizedName(input).
func OptimizeFile(input, output string, opts OptimizeOptions, save SaveOptions) (*OptimizeResult, error) {
	if output == "" {
		output = OptimizedName(input)
	}

	in, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	img, err := Open(input)
	if err != nil {
		return nil, err
	}
	res := Optimize(img, opts)

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, &WriteError{Path: output, Err: err}
	}
	if err := Save(res.Image, output, save); err != nil {
		return nil, err
	}
	out, err := os.Stat(output)
	if err != nil {
		return nil, &WriteError{Path: output, Err: err}
	}

	res.Output = output
	res.InputBytes = in.Size()
	res.OutputBytes = out.Size()
	return res, nil
}
