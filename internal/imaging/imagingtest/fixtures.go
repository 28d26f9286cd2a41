// Package imagingtest provides image fixtures shared by tests.
package imagingtest

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
)

// Named samples of the scenario image.
var (
	Red         = color.NRGBA{255, 0, 0, 255}
	Blue        = color.NRGBA{0, 0, 255, 255}
	Yellow      = color.NRGBA{255, 255, 0, 255}
	YellowGreen = color.NRGBA{128, 255, 0, 255}
	Magenta     = color.NRGBA{255, 0, 255, 255}
	White       = color.NRGBA{255, 255, 255, 255}
	ClearWhite  = color.NRGBA{255, 255, 255, 0}
	Green       = color.NRGBA{0, 255, 0, 255}
	Black       = color.NRGBA{0, 0, 0, 255}
	Clear       = color.NRGBA{0, 0, 0, 0}
	Gray        = color.NRGBA{128, 128, 128, 255}
	Orange      = color.NRGBA{255, 128, 0, 255}
	Purple      = color.NRGBA{128, 0, 255, 255}
	DarkGreen   = color.NRGBA{0, 128, 0, 255}
	Navy        = color.NRGBA{0, 0, 128, 255}
	Cyan        = color.NRGBA{0, 255, 255, 255}
)

// ScenarioRows is the 4x4 scenario image, row by row.
//
// Red at (0,0), yellow-green at (3,0), white at (1,1), transparent pixels at
// (2,1) and (1,2), green at (3,1), purple at (0,3) and cyan at (3,3).
var ScenarioRows = [4][4]color.NRGBA{
	{Red, Blue, Yellow, YellowGreen},
	{Magenta, White, ClearWhite, Green},
	{Black, Clear, Gray, Orange},
	{Purple, DarkGreen, Navy, Cyan},
}

// Scenario builds the 4x4 scenario image.
func Scenario() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y, row := range ScenarioRows {
		for x, c := range row {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Fill builds a width by height image of a single color.
func Fill(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WritePNG saves img as name inside a per-test temp directory and returns
// the file path.
func WritePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
