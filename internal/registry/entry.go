package registry

import (
	"fmt"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/errdefs"
)

// Encoding is one of the four ways an entry can spell its color:
// HexRGB, HexRGBA, RGBTriple or RGBAQuad.
//
// The interface is sealed; each case decodes through exactly one codec path.
type Encoding interface {
	// Decode converts the encoding to a sample, failing with
	// errdefs.ErrInvalidEncoding when the value is unusable.
	Decode() (codec.RGBA, error)

	// Field names the file field this encoding is stored under.
	Field() string

	isEncoding()
}

// HexRGB is hex text for an opaque color, e.g. "#123abc".
type HexRGB string

// HexRGBA is hex text with a trailing alpha byte, e.g. "0x123abcff".
type HexRGBA string

// RGBTriple is an opaque color given as three integers 0-255.
type RGBTriple [3]int

// RGBAQuad is a color given as four integers 0-255.
type RGBAQuad [4]int

func (h HexRGB) Decode() (codec.RGBA, error)  { return codec.DecodeRGB(string(h)) }
func (h HexRGBA) Decode() (codec.RGBA, error) { return codec.DecodeRGBA(string(h)) }

func (t RGBTriple) Decode() (codec.RGBA, error) {
	ch, err := channels(t[:])
	if err != nil {
		return codec.RGBA{}, err
	}
	return codec.Opaque(ch[0], ch[1], ch[2]), nil
}

func (q RGBAQuad) Decode() (codec.RGBA, error) {
	ch, err := channels(q[:])
	if err != nil {
		return codec.RGBA{}, err
	}
	return codec.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func (HexRGB) Field() string    { return fieldColor }
func (HexRGBA) Field() string   { return fieldColorRGBA }
func (RGBTriple) Field() string { return fieldRGB }
func (RGBAQuad) Field() string  { return fieldRGBA }

func (HexRGB) isEncoding()    {}
func (HexRGBA) isEncoding()   {}
func (RGBTriple) isEncoding() {}
func (RGBAQuad) isEncoding()  {}

func channels(vals []int) ([]uint8, error) {
	out := make([]uint8, len(vals))
	for i, v := range vals {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: channel %d value %d outside 0-255", errdefs.ErrInvalidEncoding, i, v)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// Entry is one named color record.
type Entry struct {
	Name     string
	Encoding Encoding
}

// Decode returns the sample the entry's encoding stands for.
func (e Entry) Decode() (codec.RGBA, error) {
	if e.Encoding == nil {
		return codec.RGBA{}, fmt.Errorf("%w: entry %q has no color", errdefs.ErrInvalidEncoding, e.Name)
	}
	c, err := e.Encoding.Decode()
	if err != nil {
		return codec.RGBA{}, fmt.Errorf("entry %q: %w", e.Name, err)
	}
	return c, nil
}

// Registry is the ordered list of entries read from a color definition file.
//
// Order is file order. Color values need not be unique.
type Registry struct {
	Entries []Entry
}

// New builds a registry from entries, keeping their order.
func New(entries ...Entry) *Registry {
	return &Registry{Entries: entries}
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.Entries)
}

// Names returns every entry name in registry order, duplicates included.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}
	return names
}
