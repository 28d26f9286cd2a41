package registry

import (
	"golang.org/x/image/colornames"

	"github.com/ironsheep/imgdata/internal/codec"
)

// Builtin returns the SVG 1.1 named colors in alphabetical order.
//
// Some names share a value ("aqua" and "cyan", the gray/grey spellings), so a
// table built from Builtin resolves those values to the alphabetically last name.
func Builtin() *Registry {
	entries := make([]Entry, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		entries = append(entries, Entry{
			Name:     name,
			Encoding: HexRGB("#" + codec.EncodeRGB(c.R, c.G, c.B)),
		})
	}
	return &Registry{Entries: entries}
}
