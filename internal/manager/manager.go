package manager

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log/slog"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/imaging"
	"github.com/ironsheep/imgdata/internal/lookup"
	"github.com/ironsheep/imgdata/internal/registry"
)

// Options configures a Manager loaded from files.
type Options struct {
	// ImagePath is the raster image whose pixels are resolved.
	ImagePath string

	// RegistryPath is the color definition file (.json, .toml, .yaml, optionally .zst).
	RegistryPath string

	// Lenient skips registry entries with invalid colors instead of failing.
	Lenient bool

	// Logger receives load and build diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Manager binds an image to a lookup table and answers pixel queries.
//
// A Manager is immutable after construction and safe for concurrent readers.
type Manager struct {
	src   imaging.Source
	reg   *registry.Registry
	table *lookup.Table
}

// PixelData is the result of resolving one pixel.
type PixelData struct {
	X         uint32     `json:"x"`
	Y         uint32     `json:"y"`
	Color     codec.RGBA `json:"color"`
	ColorName string     `json:"color_name"`
}

// Hash returns the content hash of the pixel's coordinates and color.
//
// The digest is XXH64 (seed 0) over 12 bytes: x and y as big-endian uint32,
// then r, g, b, a. ColorName is not part of the input, so the same pixel
// resolved through different registries hashes identically.
func (p PixelData) Hash() uint64 {
	buf := make([]byte, 0, 12)
	buf = binary.BigEndian.AppendUint32(buf, p.X)
	buf = binary.BigEndian.AppendUint32(buf, p.Y)
	buf = append(buf, p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	return xxhash.Sum64(buf)
}

// New loads the image and the color definitions named in opts and builds the
// lookup table. Any load or build failure is returned unchanged in kind
// (errdefs.ErrSourceUnreadable, ErrMalformedSource or ErrInvalidEncoding).
func New(opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg, err := registry.Load(opts.RegistryPath)
	if err != nil {
		return nil, err
	}
	src, err := imaging.Load(opts.ImagePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("sources loaded",
		"image", opts.ImagePath, "width", src.Width(), "height", src.Height(),
		"registry", opts.RegistryPath, "entries", reg.Len())

	return NewFromSources(src, reg, lookup.Options{Lenient: opts.Lenient, Logger: logger})
}

// NewFromSources builds a Manager from an already decoded image and registry.
func NewFromSources(src imaging.Source, reg *registry.Registry, opts lookup.Options) (*Manager, error) {
	table, err := lookup.Build(reg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup table: %w", err)
	}
	return NewFromTable(src, reg, table), nil
}

// NewFromTable binds an image to a lookup table already built from reg.
// Managers sharing a registry can share one table this way.
func NewFromTable(src imaging.Source, reg *registry.Registry, table *lookup.Table) *Manager {
	return &Manager{src: src, reg: reg, table: table}
}

// Width returns the image width in pixels.
func (m *Manager) Width() int { return m.src.Width() }

// Height returns the image height in pixels.
func (m *Manager) Height() int { return m.src.Height() }

// Table returns the lookup table built at construction.
func (m *Manager) Table() *lookup.Table { return m.table }

// Registry returns the color definitions the table was built from.
func (m *Manager) Registry() *registry.Registry { return m.reg }

// Get resolves the pixel at (x, y). A color with no table entry resolves to
// lookup.Unknown; only out-of-range coordinates produce an error.
func (m *Manager) Get(x, y uint32) (PixelData, error) {
	c, err := m.src.Sample(int(x), int(y))
	if err != nil {
		return PixelData{}, err
	}
	return m.pixel(x, y, c), nil
}

// Hash returns the content hash of the pixel at (x, y). See PixelData.Hash.
func (m *Manager) Hash(x, y uint32) (uint64, error) {
	p, err := m.Get(x, y)
	if err != nil {
		return 0, err
	}
	return p.Hash(), nil
}

func (m *Manager) pixel(x, y uint32, c codec.RGBA) PixelData {
	return PixelData{X: x, Y: y, Color: c, ColorName: m.table.Name(c)}
}

// Pixels yields every pixel in row-major order: row 0 left to right, then
// row 1, and so on. Each call starts a fresh traversal.
func (m *Manager) Pixels() iter.Seq[PixelData] {
	return func(yield func(PixelData) bool) {
		w, h := m.src.Width(), m.src.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c, err := m.src.Sample(x, y)
				if err != nil {
					return
				}
				if !yield(m.pixel(uint32(x), uint32(y), c)) {
					return
				}
			}
		}
	}
}

// ColorsRGB returns the r, g, b channels of every table color.
// Order is unspecified.
func (m *Manager) ColorsRGB() [][3]uint8 {
	colors := m.table.Colors()
	out := make([][3]uint8, len(colors))
	for i, c := range colors {
		out[i] = c.RGB()
	}
	return out
}

// ColorsHex returns every table color as "0xRRGGBB". Order is unspecified.
func (m *Manager) ColorsHex() []string {
	colors := m.table.Colors()
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = "0x" + c.Hex()
	}
	return out
}

// ColorNames returns the name of every table entry. Order is unspecified.
func (m *Manager) ColorNames() []string {
	return m.table.Names()
}

// UniqueColorsRGB returns the distinct r, g, b values present in the image,
// in channel order. Pixels differing only in alpha count once.
func (m *Manager) UniqueColorsRGB() ([][3]uint8, error) {
	distinct, err := imaging.Distinct(m.src)
	if err != nil {
		return nil, err
	}

	out := make([][3]uint8, 0, len(distinct))
	for _, c := range distinct {
		rgb := c.RGB()
		// distinct is sorted r,g,b,a so equal rgb values are adjacent
		if n := len(out); n > 0 && out[n-1] == rgb {
			continue
		}
		out = append(out, rgb)
	}
	return out, nil
}

// UniqueColorsHex is UniqueColorsRGB formatted as "0xRRGGBB".
func (m *Manager) UniqueColorsHex() ([]string, error) {
	rgbs, err := m.UniqueColorsRGB()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rgbs))
	for i, c := range rgbs {
		out[i] = "0x" + codec.EncodeRGB(c[0], c[1], c[2])
	}
	return out, nil
}

// NameCount is the number of pixels that resolved to one name.
type NameCount struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Coverage counts how many pixels resolve to each name, lookup.Unknown
// included. Results are sorted by count, most common first, then by name.
func (m *Manager) Coverage() []NameCount {
	counts := make(map[string]int)
	total := 0
	for p := range m.Pixels() {
		counts[p.ColorName]++
		total++
	}

	out := make([]NameCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, NameCount{
			Name:       name,
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
