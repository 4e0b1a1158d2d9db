package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveOptions controls how Save encodes an image.
type SaveOptions struct {
	// Quality is the JPEG quality (1-100). Ignored for other formats.
	// Zero selects 95.
	Quality int

	// DPI is written as density metadata for JPEG and PNG output.
	// Zero leaves density untagged.
	DPI int
}

// MaxDPI is the largest density the JFIF and pHYs fields can record.
const MaxDPI = math.MaxUint16

// WriteError reports a failure to persist an image at Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ErrDensityUnsupported is wrapped into the result of EncodeWithDensity when
// a DPI is requested for a format that has no density field.
var ErrDensityUnsupported = errors.New("format does not carry density metadata")

// Save encodes img in the format implied by path's extension and writes it
// atomically: the data lands in a temporary file in the destination directory
// which is then renamed over path.
//
// Every failure is returned as a *WriteError.
func Save(img image.Image, path string, opts SaveOptions) error {
	data, err := EncodeWithDensity(img, path, opts)
	if err != nil && !errors.Is(err, ErrDensityUnsupported) {
		return &WriteError{Path: path, Err: err}
	}

	if err := writeFileAtomic(path, data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// EncodeWithDensity encodes img for the extension of path and tags the result
// with opts.DPI. When the format has no density field the encoded bytes are
// returned together with an error wrapping ErrDensityUnsupported.
func EncodeWithDensity(img image.Image, path string, opts SaveOptions) ([]byte, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return nil, err
	}

	quality := opts.Quality
	if quality == 0 {
		quality = 95
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality must be in 1..100, got %d", quality)
	}
	if opts.DPI < 0 || opts.DPI > MaxDPI {
		return nil, fmt.Errorf("dpi out of range: %d", opts.DPI)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	if opts.DPI == 0 {
		return buf.Bytes(), nil
	}

	switch format {
	case imaging.JPEG:
		return withJFIFDensity(buf.Bytes(), opts.DPI)
	case imaging.PNG:
		return withPNGDensity(buf.Bytes(), opts.DPI)
	default:
		return buf.Bytes(), fmt.Errorf("%s: %w", format, ErrDensityUnsupported)
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// withJFIFDensity sets the APP0 JFIF density of a baseline JPEG stream to dpi
// dots per inch, inserting the segment after SOI when the encoder omitted it.
func withJFIFDensity(data []byte, dpi int) ([]byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, errors.New("not a JPEG stream")
	}

	// existing JFIF APP0: units at 13, densities at 14..17
	if len(data) >= 20 && data[2] == 0xFF && data[3] == 0xE0 && string(data[6:11]) == "JFIF\x00" {
		out := append([]byte(nil), data...)
		out[13] = 1
		binary.BigEndian.PutUint16(out[14:16], uint16(dpi))
		binary.BigEndian.PutUint16(out[16:18], uint16(dpi))
		return out, nil
	}

	seg := []byte{
		0xFF, 0xE0, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, // version 1.01
		0x01,       // units: dots per inch
		0, 0, 0, 0, // x/y density
		0x00, 0x00, // no thumbnail
	}
	binary.BigEndian.PutUint16(seg[12:14], uint16(dpi))
	binary.BigEndian.PutUint16(seg[14:16], uint16(dpi))

	out := make([]byte, 0, len(data)+len(seg))
	out = append(out, data[:2]...)
	out = append(out, seg...)
	out = append(out, data[2:]...)
	return out, nil
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// withPNGDensity inserts a pHYs chunk directly after IHDR.
func withPNGDensity(data []byte, dpi int) ([]byte, error) {
	// signature (8) + IHDR length/type/data/crc (4+4+13+4)
	const ihdrEnd = 33
	if len(data) < ihdrEnd || !bytes.Equal(data[:8], pngSignature) || string(data[12:16]) != "IHDR" {
		return nil, errors.New("not a PNG stream")
	}

	ppm := uint32(math.Round(float64(dpi) / 0.0254))
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out, nil
}

// CarriesDensity reports whether files written to path can record a DPI.
func CarriesDensity(path string) bool {
	format, err := imaging.FormatFromFilename(path)
	return err == nil && (format == imaging.JPEG || format == imaging.PNG)
}
