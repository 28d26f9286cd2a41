package codec

import (
	"image/color"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/imgdata/internal/errdefs"
)

func TestDecodeRGB_Prefixes(t *testing.T) {
	want := RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}

	for _, text := range []string{"336699", "0x336699", "#336699", "00336699"} {
		t.Run(text, func(t *testing.T) {
			got, err := DecodeRGB(text)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeRGB_MixedCase(t *testing.T) {
	lower, err := DecodeRGB("#123abc")
	require.NoError(t, err)
	upper, err := DecodeRGB("#123ABC")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
	assert.Equal(t, RGBA{R: 0x12, G: 0x3A, B: 0xBC, A: 255}, lower)
}

func TestDecodeRGB_ShortText(t *testing.T) {
	// Short text is a number, not CSS shorthand.
	got, err := DecodeRGB("FFF")
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 0, G: 0x0F, B: 0xFF, A: 255}, got)
}

func TestDecodeRGB_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prefix only hash", "#"},
		{"prefix only 0x", "0x"},
		{"non hex", "#GGHHII"},
		{"double prefix", "#0x336699"},
		{"sign", "-336699"},
		{"too wide", "#1336699"},
		{"whitespace", " 336699"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRGB(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, errdefs.ErrInvalidEncoding)
		})
	}
}

func TestDecodeRGBA(t *testing.T) {
	tests := []struct {
		text string
		want RGBA
	}{
		{"336699ff", RGBA{51, 102, 153, 255}},
		{"0x336699ff", RGBA{51, 102, 153, 255}},
		{"#336699ff", RGBA{51, 102, 153, 255}},
		{"33669933", RGBA{51, 102, 153, 51}},
		{"0x33669966", RGBA{51, 102, 153, 102}},
		{"#00000000", RGBA{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := DecodeRGBA(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRGBA_Invalid(t *testing.T) {
	for _, text := range []string{"", "#", "336699fz", "1336699ff"} {
		_, err := DecodeRGBA(text)
		assert.ErrorIs(t, err, errdefs.ErrInvalidEncoding, "text %q", text)
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "00FF00", EncodeRGB(0, 255, 0))
	assert.Equal(t, "00FF00FF", EncodeRGBA(0, 255, 0, 255))
	assert.Equal(t, "0A0B0C", EncodeRGB(10, 11, 12))
	assert.Equal(t, "0A0B0C0D", EncodeRGBA(10, 11, 12, 13))
}

func TestRoundTripRGB(t *testing.T) {
	for _, v := range []uint8{0, 1, 15, 16, 127, 128, 254, 255} {
		for _, w := range []uint8{0, 9, 200, 255} {
			got, err := DecodeRGB(EncodeRGB(v, w, v^w))
			require.NoError(t, err)
			assert.Equal(t, [3]uint8{v, w, v ^ w}, got.RGB())
			assert.Equal(t, uint8(255), got.A)
		}
	}
}

func TestRoundTripRGBA(t *testing.T) {
	for _, v := range []uint8{0, 1, 15, 16, 127, 128, 254, 255} {
		for _, a := range []uint8{0, 64, 255} {
			want := RGBA{R: v, G: 255 - v, B: v / 2, A: a}
			got, err := DecodeRGBA(want.HexA())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestRGBA_Accessors(t *testing.T) {
	green := RGBA{0, 255, 0, 255}
	assert.Equal(t, [3]uint8{0, 255, 0}, green.RGB())
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, green.Array())
	assert.Equal(t, "00FF00", green.Hex())
	assert.Equal(t, "00FF00FF", green.HexA())
	assert.Equal(t, "rgba(0,255,0,255)", green.String())
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, green.NRGBA())
	assert.Equal(t, green, Opaque(0, 255, 0))
}

func TestRGBA_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBA
		want int
	}{
		{"equal", RGBA{1, 2, 3, 4}, RGBA{1, 2, 3, 4}, 0},
		{"red decides", RGBA{1, 200, 200, 200}, RGBA{2, 0, 0, 0}, -1},
		{"green decides", RGBA{1, 3, 0, 0}, RGBA{1, 2, 255, 255}, 1},
		{"blue decides", RGBA{1, 2, 3, 0}, RGBA{1, 2, 4, 0}, -1},
		{"alpha decides", RGBA{1, 2, 3, 5}, RGBA{1, 2, 3, 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestRGBA_SortDeterministic(t *testing.T) {
	samples := []RGBA{{255, 0, 0, 255}, {0, 0, 0, 0}, {0, 255, 255, 255}, {0, 255, 255, 0}}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Less(samples[j]) })

	assert.Equal(t, []RGBA{{0, 0, 0, 0}, {0, 255, 255, 0}, {0, 255, 255, 255}, {255, 0, 0, 255}}, samples)
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want RGBA
	}{
		{"nrgba kept", color.NRGBA{10, 20, 30, 40}, RGBA{10, 20, 30, 40}},
		{"opaque rgba", color.RGBA{255, 0, 0, 255}, RGBA{255, 0, 0, 255}},
		{"transparent rgba", color.RGBA{0, 0, 0, 0}, RGBA{0, 0, 0, 0}},
		{"16-bit", color.NRGBA64{0xFFFF, 0x8000, 0x00FF, 0xFFFF}, RGBA{255, 128, 0, 255}},
		{"gray", color.Gray{128}, RGBA{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromColor(tt.in))
		})
	}
}
