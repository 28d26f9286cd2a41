// Package console prints resolved pixels to a terminal.
package console

import (
	"fmt"
	"io"
	"iter"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/lookup"
	"github.com/ironsheep/imgdata/internal/manager"
)

// Block is the two-cell swatch printed before each name.
const Block = "██"

// Transparent replaces Block for fully transparent samples.
const Transparent = "░░"

// backdrop is what partially transparent samples are composited over.
var backdrop = colorful.Color{R: 0, G: 0, B: 0}

// Painter renders samples as colored terminal text.
type Painter struct {
	out *termenv.Output
}

// NewPainter returns a Painter for w, detecting its color profile.
// Writers that are not terminals get plain, uncolored text.
func NewPainter(w io.Writer) *Painter {
	return &Painter{out: termenv.NewOutput(w)}
}

// NewPainterWithProfile returns a Painter that always uses profile.
func NewPainterWithProfile(w io.Writer, profile termenv.Profile) *Painter {
	return &Painter{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// Paint colors text with the sample. Terminals cannot show transparency, so
// the sample is blended over a black backdrop by its alpha; an opaque sample
// keeps its exact channels.
func (p *Painter) Paint(c codec.RGBA, text string) string {
	return p.out.String(text).Foreground(p.out.Color(Shown(c).Hex())).String()
}

// Shown returns the color a sample is painted with.
func Shown(c codec.RGBA) colorful.Color {
	straight := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return backdrop.BlendRgb(straight, float64(c.A)/255)
}

// Swatch returns a painted block for the sample, or the Transparent marker
// when its alpha is zero.
func (p *Painter) Swatch(c codec.RGBA) string {
	if c.A == 0 {
		return Transparent
	}
	return p.Paint(c, Block)
}

// Pixel formats one resolved pixel as "<block> name".
func (p *Painter) Pixel(px manager.PixelData) string {
	return fmt.Sprintf("%s %s", p.Swatch(px.Color), px.ColorName)
}

// ShowNames writes every pixel's swatch and name, one image row per line.
// Unresolved pixels show their hex value after the UNKNOWN name.
// It returns the number of pixels that did not resolve.
func (p *Painter) ShowNames(pixels iter.Seq[manager.PixelData]) (int, error) {
	unknown := 0
	row := uint32(0)
	first := true
	for px := range pixels {
		if px.Y != row {
			if _, err := fmt.Fprintln(p.out); err != nil {
				return unknown, err
			}
			row = px.Y
			first = true
		}
		sep := " :: "
		if first {
			sep = ""
			first = false
		}
		text := p.Pixel(px)
		if px.ColorName == lookup.Unknown {
			unknown++
			text += " (0x" + px.Color.HexA() + ")"
		}
		if _, err := fmt.Fprint(p.out, sep+text); err != nil {
			return unknown, err
		}
	}
	if !first {
		if _, err := fmt.Fprintln(p.out); err != nil {
			return unknown, err
		}
	}
	return unknown, nil
}
