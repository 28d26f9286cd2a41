package imaging

import (
	"sort"

	"github.com/ironsheep/imgdata/internal/codec"
)

// ColorFrequency represents a distinct color and how often it occurs.
type ColorFrequency struct {
	Hex        string     `json:"hex"`        // Hex color "0xRRGGBBAA"
	RGBA       codec.RGBA `json:"rgba"`       // Exact sample
	Count      int        `json:"count"`      // Number of pixels with this color
	Percentage float64    `json:"percentage"` // Share of all pixels (0-100)
}

// CensusResult lists every distinct color of an image.
//
// Colors are sorted by count, most common first; ties are broken by channel
// order so the result is deterministic.
type CensusResult struct {
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Colors []ColorFrequency `json:"colors"`
}

// Census counts the exact colors of every pixel in src.
//
// Unlike a dominant-color palette, no quantization is applied: two pixels
// land in the same bucket only when all four channels are equal. If limit
// is positive, at most limit colors are returned.
//
// The function visits every pixel once, so cost grows with image area.
func Census(src Source, limit int) (*CensusResult, error) {
	counts := make(map[codec.RGBA]int)
	w, h := src.Width(), src.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := src.Sample(x, y)
			if err != nil {
				return nil, err
			}
			counts[c]++
		}
	}

	total := w * h
	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        "0x" + c.HexA(),
			RGBA:       c,
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].RGBA.Less(colors[j].RGBA)
	})

	if limit > 0 && len(colors) > limit {
		colors = colors[:limit]
	}

	return &CensusResult{Width: w, Height: h, Colors: colors}, nil
}

// Distinct returns each distinct sample of src once, in channel order.
func Distinct(src Source) ([]codec.RGBA, error) {
	seen := make(map[codec.RGBA]struct{})
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c, err := src.Sample(x, y)
			if err != nil {
				return nil, err
			}
			seen[c] = struct{}{}
		}
	}

	out := make([]codec.RGBA, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out, nil
}
