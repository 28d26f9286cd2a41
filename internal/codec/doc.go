// Package codec converts between hexadecimal color text and 4-channel samples.
//
// # Hex Formats
//
// Decoding accepts an optional single "0x" or "#" prefix followed by base-16
// digits (either case):
//   - DecodeRGB: value must fit in 24 bits, alpha defaults to 255
//   - DecodeRGBA: value must fit in 32 bits, bytes map to r, g, b, a
//
// Encoding always produces uppercase, zero-padded text without a prefix:
//   - EncodeRGB: "RRGGBB"
//   - EncodeRGBA: "RRGGBBAA"
//
// # Errors
//
// Empty text, non-hex characters and values wider than the target width all
// fail with errdefs.ErrInvalidEncoding. Nothing decodes silently to zero.
package codec
