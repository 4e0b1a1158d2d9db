package imaging

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// Open decodes the image file at path.
//
// The format is detected from the file contents, not the extension. EXIF
// orientation tags are applied so that scanner and camera output is upright.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a decodable JPEG, PNG, GIF, TIFF or BMP image
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the encoding detected from the file contents ("jpeg", "png",
	// "gif", "tiff", "bmp"), regardless of the file extension.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo decodes the image at path and reports its metadata.
func LoadImageInfo(path string) (*ImageInfo, error) {
	img, err := Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// detectFormat reads only the image header to name its encoding.
func detectFormat(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image header: %w", err)
	}
	return format, nil
}

// SupportedExtension reports whether ext (with leading dot, any case) names a
// raster format this package can decode.
func SupportedExtension(ext string) bool {
	_, err := imaging.FormatFromExtension(ext)
	return err == nil
}
