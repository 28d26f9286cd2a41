// Package lookup builds the exact-match index from RGBA samples to color names.
//
// A Table is built once from a registry and never changes afterwards, so it
// can be shared by concurrent readers without locking.
package lookup

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/registry"
)

// Unknown is the name reported for samples that have no table entry.
const Unknown = "UNKNOWN"

// Options controls how a table is built.
type Options struct {
	// Lenient skips entries whose color fails to decode instead of failing the
	// whole build. Every skipped entry is logged and kept in Table.Skipped.
	Lenient bool

	// Logger receives warnings for skipped entries. Defaults to slog.Default().
	Logger *slog.Logger
}

// Table maps exact samples to names.
type Table struct {
	names   map[codec.RGBA]string
	skipped error
}

// Build indexes every registry entry in order. When two entries decode to the
// same sample, the later entry's name wins.
//
// In the default strict mode the first entry that fails to decode aborts the
// build with an error wrapping errdefs.ErrInvalidEncoding.
func Build(reg *registry.Registry, opts Options) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{names: make(map[codec.RGBA]string, reg.Len())}
	var skipped []error
	for i, e := range reg.Entries {
		c, err := e.Decode()
		if err != nil {
			err = fmt.Errorf("entry %d: %w", i, err)
			if !opts.Lenient {
				return nil, err
			}
			logger.Warn("skipping color entry", "index", i, "name", e.Name, "error", err)
			skipped = append(skipped, err)
			continue
		}
		if prev, ok := t.names[c]; ok && prev != e.Name {
			logger.Debug("color redefined", "color", c.HexA(), "previous", prev, "name", e.Name)
		}
		t.names[c] = e.Name
	}
	t.skipped = errors.Join(skipped...)
	return t, nil
}

// Resolve returns the name for an exact sample match.
func (t *Table) Resolve(c codec.RGBA) (string, bool) {
	name, ok := t.names[c]
	return name, ok
}

// Name returns the resolved name or Unknown.
func (t *Table) Name(c codec.RGBA) string {
	if name, ok := t.names[c]; ok {
		return name
	}
	return Unknown
}

// Len returns the number of distinct samples in the table.
func (t *Table) Len() int {
	return len(t.names)
}

// Skipped returns the joined decode errors of entries dropped by a lenient
// build, or nil when nothing was skipped.
func (t *Table) Skipped() error {
	return t.skipped
}

// Names returns the name of every table entry. Order is unspecified.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, name)
	}
	return out
}

// Colors returns every sample in the table. Order is unspecified.
func (t *Table) Colors() []codec.RGBA {
	out := make([]codec.RGBA, 0, len(t.names))
	for c := range t.names {
		out = append(out, c)
	}
	return out
}

// SortedColors returns every sample in channel order.
func (t *Table) SortedColors() []codec.RGBA {
	out := t.Colors()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
