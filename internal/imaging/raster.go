package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/errdefs"
)

// Source is a 2-D grid of RGBA samples.
//
// Coordinates are 0-based with the origin at the top-left; valid X is
// 0..Width()-1 and valid Y is 0..Height()-1.
type Source interface {
	Width() int
	Height() int

	// Sample returns the sample at (x, y), or an error wrapping
	// errdefs.ErrIndexOutOfRange when the coordinates are outside the grid.
	Sample(x, y int) (codec.RGBA, error)
}

// Raster is an immutable, non-premultiplied 8-bit image.
//
// Raster satisfies Source. Whatever the decoded color model (paletted,
// premultiplied RGBA, 16-bit, YCbCr), pixels are normalized once to NRGBA so
// a transparent pixel keeps its color channels where the file stored them.
type Raster struct {
	img *image.NRGBA
}

// NewRaster copies img into a Raster whose bounds start at (0,0).
func NewRaster(img image.Image) *Raster {
	return &Raster{img: imaging.Clone(img)}
}

// Width returns the image width in pixels.
func (r *Raster) Width() int { return r.img.Bounds().Dx() }

// Height returns the image height in pixels.
func (r *Raster) Height() int { return r.img.Bounds().Dy() }

// InBounds reports whether (x, y) addresses a pixel.
func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width() && y < r.Height()
}

// Sample returns the pixel at (x, y).
func (r *Raster) Sample(x, y int) (codec.RGBA, error) {
	if !r.InBounds(x, y) {
		return codec.RGBA{}, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			errdefs.ErrIndexOutOfRange, x, y, r.Width(), r.Height())
	}
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	return codec.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
}
