// Package label draws panel letters onto composite figures.
//
// Labels use an outline-then-fill scheme: the glyph mask is stamped in the
// outline color at every offset within OutlineWidth of the anchor, then once
// in the fill color at the anchor itself. The resulting halo keeps a black
// letter readable on dark and light panels alike without inspecting the
// pixels underneath.
//
// # Font Resolution
//
// A Renderer resolves its face once, when it is created, by walking the
// configured candidates in order:
//
//  1. Absolute font file paths are loaded directly.
//  2. Bare file names ("DejaVuSans-Bold.ttf") are located in the system font
//     directories.
//  3. EmbeddedFont selects the Go Bold face compiled into the binary.
//
// When every candidate fails the renderer falls back to the 7x13 bitmap face,
// scaled up with nearest-neighbour sampling to the requested size. Font
// problems are logged at debug level and never reported as errors.
package label
