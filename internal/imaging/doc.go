// Package imaging provides the raster primitives shared by the figtools commands.
//
// This package wraps decoding, encoding and whole-image transforms around the
// disintegration/imaging, bild and nfnt/resize libraries. All operations work
// with standard Go image.Image types and use a coordinate system where (0,0)
// is at the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// # Supported Formats
//
// Decoding supports JPEG, PNG, GIF, TIFF and BMP. Encoding picks the format
// from the output file extension. JPEG output carries a JFIF density segment
// and PNG output carries a pHYs chunk so the requested DPI survives into
// typesetting tools.
//
// # Writing Output
//
// Save encodes into memory, writes a temporary file next to the destination
// and renames it into place. A failed Save never leaves a truncated file at
// the destination path.
//
// # Thread Safety
//
// Every function is stateless and may be called concurrently on different
// images. None of them mutate their input image.
package imaging
