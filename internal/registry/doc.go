// Package registry models color definition files: an ordered list of named
// colors, each spelled in exactly one of four encodings.
//
// # File Shape
//
// Every supported syntax carries the same logical shape:
//
//	{ "entries": [ { "name": "ocean", "color": "#1E3F8A" }, ... ] }
//
// Each entry sets exactly one color field:
//   - color: hex RGB text, alpha 255 ("#1E3F8A", "0x1E3F8A", "1E3F8A")
//   - color_rgba: hex RGBA text ("#1E3F8A80")
//   - rgb: three integers 0-255
//   - rgba: four integers 0-255
//
// # Formats
//
// The syntax follows the file extension: .json, .toml, .yaml or .yml. A
// trailing .zst means the file is zstd-compressed, e.g. "biomes.toml.zst".
// Unknown extensions are read as JSON.
//
// # Errors
//
// Load fails with errdefs.ErrSourceUnreadable when the file cannot be read
// and errdefs.ErrMalformedSource when it does not deserialize into the shape
// above, including entries with no color field or more than one. Hex text is
// validated later, when entries are decoded.
package registry
