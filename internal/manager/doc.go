// Package manager resolves image pixels to color names.
//
// A Manager owns a decoded image and a lookup table built from a color
// definition file. Both are loaded once in New; afterwards every query is a
// read-only, in-memory operation and the Manager may be shared between
// goroutines.
//
// # Queries
//
//   - Get: the sample and resolved name at one coordinate
//   - Hash: a stable 64-bit digest of (x, y, color)
//   - Pixels: every pixel in row-major order, as an iter.Seq
//   - ColorsRGB, ColorsHex, ColorNames: the registry side of the table
//   - UniqueColorsRGB, UniqueColorsHex, Coverage: the image side
//
// Pixels whose color is not in the table resolve to lookup.Unknown. That is
// a normal result, not an error.
//
// # Content Hash
//
// Hash digests x, y, r, g, b, a with XXH64 in a fixed byte layout, so values
// are identical across runs and machines. The resolved name is excluded.
package manager
