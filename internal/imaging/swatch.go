package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/imgdata/internal/codec"
)

// DefaultSwatchCell is the side length in pixels of one swatch square.
const DefaultSwatchCell = 16

// Swatch renders one cell-by-cell square per color, left to right, in the
// order given. A non-positive cell uses DefaultSwatchCell.
//
// An empty color list yields a single transparent cell.
func Swatch(colors []codec.RGBA, cell int) *image.NRGBA {
	if cell <= 0 {
		cell = DefaultSwatchCell
	}
	n := len(colors)
	if n == 0 {
		return imaging.New(cell, cell, color.NRGBA{})
	}

	dst := imaging.New(cell*n, cell, color.NRGBA{})
	for i, c := range colors {
		square := imaging.New(cell, cell, c.NRGBA())
		dst = imaging.Paste(dst, square, image.Pt(i*cell, 0))
	}
	return dst
}

// SaveSwatch renders a swatch and writes it as PNG.
func SaveSwatch(path string, colors []codec.RGBA, cell int) error {
	if err := imgio.Save(path, Swatch(colors, cell), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write swatch: %w", err)
	}
	return nil
}
