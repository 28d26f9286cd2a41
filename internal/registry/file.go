package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/imgdata/internal/errdefs"
)

// Format is a serialization syntax for color definition files.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// file field names, shared by all formats
const (
	fieldColor     = "color"
	fieldColorRGBA = "color_rgba"
	fieldRGB       = "rgb"
	fieldRGBA      = "rgba"
)

// fileEntry is the on-disk shape of one entry. Exactly one color field may be set.
type fileEntry struct {
	Name      string  `json:"name" toml:"name" yaml:"name"`
	Color     *string `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	ColorRGBA *string `json:"color_rgba,omitempty" toml:"color_rgba,omitempty" yaml:"color_rgba,omitempty"`
	RGB       []int   `json:"rgb,omitempty" toml:"rgb,omitempty" yaml:"rgb,omitempty"`
	RGBA      []int   `json:"rgba,omitempty" toml:"rgba,omitempty" yaml:"rgba,omitempty"`
}

// fileShape is the document root. Entries is a pointer so that a document
// without the key can be told apart from an explicit empty list.
type fileShape struct {
	Entries *[]fileEntry `json:"entries" toml:"entries" yaml:"entries"`
}

// DetectFormat picks a format from a file name.
//
// A trailing ".zst" marks zstd compression and the extension before it picks
// the syntax. Unrecognized extensions fall back to JSON.
func DetectFormat(path string) (format Format, compressed bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".zst" {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}

	switch ext {
	case ".toml":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		format = FormatJSON
	}
	return format, compressed
}

// Load reads and decodes a color definition file.
//
// # Errors
//
//   - errdefs.ErrSourceUnreadable if the file cannot be opened or read
//   - errdefs.ErrMalformedSource if the content does not match the expected shape
//
// Color text is not decoded here; that happens when a lookup table is built.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open color file: %w", errdefs.ErrSourceUnreadable, err)
	}
	defer f.Close()

	format, compressed := DetectFormat(path)

	var r io.Reader = f
	if compressed {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open zstd stream: %w", errdefs.ErrMalformedSource, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if compressed {
			return nil, fmt.Errorf("%w: failed to decompress color file: %w", errdefs.ErrMalformedSource, err)
		}
		return nil, fmt.Errorf("%w: failed to read color file: %w", errdefs.ErrSourceUnreadable, err)
	}

	reg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Decode parses serialized color definitions in the given format.
func Decode(data []byte, format Format) (*Registry, error) {
	var shape fileShape
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &shape)
	case FormatTOML:
		err = toml.Unmarshal(data, &shape)
	case FormatYAML:
		err = yaml.Unmarshal(data, &shape)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", errdefs.ErrMalformedSource, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrMalformedSource, err)
	}
	if shape.Entries == nil {
		return nil, fmt.Errorf("%w: missing %q list", errdefs.ErrMalformedSource, "entries")
	}

	entries := make([]Entry, 0, len(*shape.Entries))
	for i, fe := range *shape.Entries {
		e, err := fe.entry()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", errdefs.ErrMalformedSource, i, err)
		}
		entries = append(entries, e)
	}
	return &Registry{Entries: entries}, nil
}

func (fe fileEntry) entry() (Entry, error) {
	if fe.Name == "" {
		return Entry{}, fmt.Errorf("missing name")
	}

	var found []Encoding
	if fe.Color != nil {
		found = append(found, HexRGB(*fe.Color))
	}
	if fe.ColorRGBA != nil {
		found = append(found, HexRGBA(*fe.ColorRGBA))
	}
	if fe.RGB != nil {
		if len(fe.RGB) != 3 {
			return Entry{}, fmt.Errorf("%q: rgb needs 3 values, got %d", fe.Name, len(fe.RGB))
		}
		found = append(found, RGBTriple{fe.RGB[0], fe.RGB[1], fe.RGB[2]})
	}
	if fe.RGBA != nil {
		if len(fe.RGBA) != 4 {
			return Entry{}, fmt.Errorf("%q: rgba needs 4 values, got %d", fe.Name, len(fe.RGBA))
		}
		found = append(found, RGBAQuad{fe.RGBA[0], fe.RGBA[1], fe.RGBA[2], fe.RGBA[3]})
	}

	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%q: no color field", fe.Name)
	case 1:
		return Entry{Name: fe.Name, Encoding: found[0]}, nil
	default:
		fields := make([]string, len(found))
		for i, enc := range found {
			fields[i] = enc.Field()
		}
		return Entry{}, fmt.Errorf("%q: more than one color field (%s)", fe.Name, strings.Join(fields, ", "))
	}
}

func toFileEntry(e Entry) (fileEntry, error) {
	fe := fileEntry{Name: e.Name}
	switch enc := e.Encoding.(type) {
	case HexRGB:
		s := string(enc)
		fe.Color = &s
	case HexRGBA:
		s := string(enc)
		fe.ColorRGBA = &s
	case RGBTriple:
		fe.RGB = enc[:]
	case RGBAQuad:
		fe.RGBA = enc[:]
	default:
		return fileEntry{}, fmt.Errorf("%w: entry %q has no color", errdefs.ErrMalformedSource, e.Name)
	}
	return fe, nil
}

// Encode serializes the registry in the given format.
func Encode(reg *Registry, format Format) ([]byte, error) {
	list := make([]fileEntry, 0, len(reg.Entries))
	for _, e := range reg.Entries {
		fe, err := toFileEntry(e)
		if err != nil {
			return nil, err
		}
		list = append(list, fe)
	}
	shape := fileShape{Entries: &list}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(shape, "", "  ")
	case FormatTOML:
		return toml.Marshal(shape)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(shape); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", errdefs.ErrMalformedSource, format)
	}
}

// Save writes the registry to path, choosing format and compression from
// the file name the same way Load does.
func Save(path string, reg *Registry) error {
	format, compressed := DetectFormat(path)
	data, err := Encode(reg, format)
	if err != nil {
		return fmt.Errorf("failed to encode color file: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create color file: %w", err)
	}
	defer f.Close()

	if !compressed {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("failed to write color file: %w", err)
		}
		return f.Close()
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to start zstd stream: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("failed to write color file: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	return f.Close()
}
