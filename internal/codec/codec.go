package codec

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ironsheep/imgdata/internal/errdefs"
)

// RGBA is one pixel sample with four 8-bit channels.
//
// RGBA is a comparable value type, so it can be used directly as a map key.
// Channels are never alpha-premultiplied: a fully transparent red pixel is
// {255, 0, 0, 0}.
type RGBA struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// Opaque returns an RGBA sample with alpha fixed at 255.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// FromColor converts any color.Color to a non-premultiplied 8-bit sample.
//
// 16-bit sources are scaled down by right-shifting 8 bits, matching the
// conversion the standard library applies in color.NRGBAModel.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA returns the sample as a standard library color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGB returns the color channels without alpha.
func (c RGBA) RGB() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// Array returns all four channels in r, g, b, a order.
func (c RGBA) Array() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// Hex returns the 6-character uppercase hex form of the color channels.
func (c RGBA) Hex() string {
	return EncodeRGB(c.R, c.G, c.B)
}

// HexA returns the 8-character uppercase hex form including alpha.
func (c RGBA) HexA() string {
	return EncodeRGBA(c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// Compare orders samples lexicographically by r, then g, then b, then a.
// It returns -1, 0 or +1 like cmp.Compare.
func (c RGBA) Compare(other RGBA) int {
	a, b := c.Array(), other.Array()
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether c sorts before other in channel order.
func (c RGBA) Less(other RGBA) bool {
	return c.Compare(other) < 0
}

// DecodeRGB parses hex text into an opaque sample.
//
// The text may carry one "0x" or "#" prefix. The remainder is read as a
// base-16 integer whose low 24 bits map to r, g and b, most significant byte
// first. Alpha is always 255.
//
// Values wider than 24 bits are rejected rather than truncated; leading zeros
// are accepted, so "00336699" decodes like "336699".
func DecodeRGB(text string) (RGBA, error) {
	v, err := parseHex(text, 24)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// DecodeRGBA parses hex text into a sample with explicit alpha.
//
// Prefix handling matches DecodeRGB. The low 32 bits map to r, g, b and a,
// most significant byte first. Values wider than 32 bits are rejected.
func DecodeRGBA(text string) (RGBA, error) {
	v, err := parseHex(text, 32)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// EncodeRGB produces exactly 6 uppercase hex characters with no prefix.
func EncodeRGB(r, g, b uint8) string {
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

// EncodeRGBA produces exactly 8 uppercase hex characters with no prefix.
func EncodeRGBA(r, g, b, a uint8) string {
	return fmt.Sprintf("%02X%02X%02X%02X", r, g, b, a)
}

// trimPrefix removes at most one leading "0x" or "#".
func trimPrefix(text string) string {
	if s, ok := strings.CutPrefix(text, "0x"); ok {
		return s
	}
	return strings.TrimPrefix(text, "#")
}

func parseHex(text string, bits int) (uint64, error) {
	digits := trimPrefix(text)
	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no hex digits", errdefs.ErrInvalidEncoding, text)
	}
	v, err := strconv.ParseUint(digits, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", errdefs.ErrInvalidEncoding, text, err)
	}
	return v, nil
}
