package imaging

import (
	"path/filepath"
	"testing"

	"github.com/ironsheep/imgdata/internal/codec"
)

func TestSwatch(t *testing.T) {
	colors := []codec.RGBA{{255, 0, 0, 255}, {0, 255, 0, 128}, {0, 0, 255, 0}}

	img := Swatch(colors, 4)
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 4 {
		t.Fatalf("bounds: got %v, want 12x4", img.Bounds())
	}

	for i, want := range colors {
		for _, p := range [][2]int{{i * 4, 0}, {i*4 + 3, 3}} {
			got := codec.FromColor(img.NRGBAAt(p[0], p[1]))
			if got != want {
				t.Errorf("cell %d at %v: got %v, want %v", i, p, got, want)
			}
		}
	}
}

func TestSwatch_Defaults(t *testing.T) {
	img := Swatch(nil, 0)
	if img.Bounds().Dx() != DefaultSwatchCell || img.Bounds().Dy() != DefaultSwatchCell {
		t.Errorf("empty swatch bounds: got %v", img.Bounds())
	}
}

func TestSaveSwatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legend.png")
	colors := []codec.RGBA{{1, 2, 3, 255}, {4, 5, 6, 255}}

	if err := SaveSwatch(path, colors, 2); err != nil {
		t.Fatalf("SaveSwatch failed: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	distinct, err := Distinct(r)
	if err != nil {
		t.Fatalf("Distinct failed: %v", err)
	}
	if len(distinct) != 2 || distinct[0] != colors[0] || distinct[1] != colors[1] {
		t.Errorf("swatch colors: got %v, want %v", distinct, colors)
	}

	if err := SaveSwatch(filepath.Join(t.TempDir(), "missing", "x.png"), colors, 2); err == nil {
		t.Error("SaveSwatch should fail for a missing directory")
	}
}
