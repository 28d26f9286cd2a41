package imaging

import (
	"image"
	"testing"

	"github.com/ironsheep/imgdata/internal/codec"
	"github.com/ironsheep/imgdata/internal/imaging/imagingtest"
)

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch {
			case x < width/2 && y < height/2:
				img.SetNRGBA(x, y, imagingtest.Red)
			case x >= width/2 && y < height/2:
				img.SetNRGBA(x, y, imagingtest.Green)
			case x < width/2:
				img.SetNRGBA(x, y, imagingtest.Blue)
			default:
				img.SetNRGBA(x, y, imagingtest.White)
			}
		}
	}
	return img
}

func TestCensus_Quadrants(t *testing.T) {
	result, err := Census(NewRaster(createPatternImage(4, 4)), 0)
	if err != nil {
		t.Fatalf("Census failed: %v", err)
	}

	if len(result.Colors) != 4 {
		t.Fatalf("got %d colors, want 4", len(result.Colors))
	}
	// Equal counts fall back to channel order.
	wantOrder := []string{"0x0000FFFF", "0x00FF00FF", "0xFF0000FF", "0xFFFFFFFF"}
	for i, cf := range result.Colors {
		if cf.Hex != wantOrder[i] {
			t.Errorf("color %d: got %s, want %s", i, cf.Hex, wantOrder[i])
		}
		if cf.Count != 4 {
			t.Errorf("color %s count: got %d, want 4", cf.Hex, cf.Count)
		}
		if cf.Percentage != 25 {
			t.Errorf("color %s percentage: got %f, want 25", cf.Hex, cf.Percentage)
		}
	}
}

func TestCensus_SortedByCount(t *testing.T) {
	img := imagingtest.Fill(10, 10, imagingtest.Gray)
	img.SetNRGBA(0, 0, imagingtest.Red)
	img.SetNRGBA(1, 0, imagingtest.Cyan)
	img.SetNRGBA(2, 0, imagingtest.Cyan)

	result, err := Census(NewRaster(img), 2)
	if err != nil {
		t.Fatalf("Census failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("limit not applied: got %d colors", len(result.Colors))
	}
	if result.Colors[0].Count != 97 || result.Colors[0].RGBA != codec.FromColor(imagingtest.Gray) {
		t.Errorf("first color: got %+v, want gray x97", result.Colors[0])
	}
	if result.Colors[1].Count != 2 || result.Colors[1].RGBA != codec.FromColor(imagingtest.Cyan) {
		t.Errorf("second color: got %+v, want cyan x2", result.Colors[1])
	}
	if result.Width != 10 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d", result.Width, result.Height)
	}
}

func TestCensus_AlphaDistinguishes(t *testing.T) {
	result, err := Census(NewRaster(imagingtest.Scenario()), 0)
	if err != nil {
		t.Fatalf("Census failed: %v", err)
	}
	// 16 pixels, all different: the two transparent pixels differ in color channels.
	if len(result.Colors) != 16 {
		t.Errorf("got %d distinct colors, want 16", len(result.Colors))
	}
}

func TestDistinct(t *testing.T) {
	colors, err := Distinct(NewRaster(createPatternImage(6, 6)))
	if err != nil {
		t.Fatalf("Distinct failed: %v", err)
	}

	want := []codec.RGBA{
		{0, 0, 255, 255},
		{0, 255, 0, 255},
		{255, 0, 0, 255},
		{255, 255, 255, 255},
	}
	if len(colors) != len(want) {
		t.Fatalf("got %d colors, want %d", len(colors), len(want))
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("color %d: got %v, want %v", i, colors[i], want[i])
		}
	}
}
