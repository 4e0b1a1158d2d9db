// Package panel tiles multi-panel figures into a single labeled composite.
//
// A figure is a set of panel images sharing a figure id, named
// <figure_id><letter>_<description>.<ext> (for example 01a_overview.jpg and
// 01B_detail.png). Tiling runs five stages in order:
//
//  1. Discover finds the panel files and assigns each an uppercase label.
//  2. Layout picks a rows x cols grid for the panel count.
//  3. Normalize resizes every panel to one canonical size.
//  4. Compose pastes panels row-major onto a white canvas and draws labels.
//  5. The composite is written once, after every earlier stage succeeded.
//
// Each stage is a pure function of its inputs. A Tiler carries configuration
// and a logger but no state between Tile calls, so separate figures may be
// tiled concurrently with one Tiler.
//
// # Canonical Size
//
// The canonical size comes from the first of panels A, B and C that is
// present, in that order. Figures without any of them use FallbackSize.
// Every panel is resized, including the one that defined the size.
//
// # Errors
//
// ErrNoPanelsFound means there was nothing to tile and is safe to skip in a
// batch. A *DecodeError names the panel file that could not be read. Write
// failures surface as *imaging.WriteError. No output file is created unless
// tiling succeeds.
package panel
