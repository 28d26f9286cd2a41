package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ironsheep/imgdata/internal/errdefs"
	"github.com/ironsheep/imgdata/internal/imaging/imagingtest"
)

func TestLoad_Scenario(t *testing.T) {
	path := imagingtest.WritePNG(t, "scenario.png", imagingtest.Scenario())

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if r.Width() != 4 || r.Height() != 4 {
		t.Fatalf("unexpected dimensions: got %dx%d, want 4x4", r.Width(), r.Height())
	}

	for y, row := range imagingtest.ScenarioRows {
		for x, want := range row {
			got, err := r.Sample(x, y)
			if err != nil {
				t.Fatalf("Sample(%d,%d) failed: %v", x, y, err)
			}
			if got.NRGBA() != want {
				t.Errorf("Sample(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	if !errors.Is(err, errdefs.ErrSourceUnreadable) {
		t.Errorf("Load error: got %v, want ErrSourceUnreadable", err)
	}
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, errdefs.ErrSourceUnreadable) {
		t.Errorf("Load error: got %v, want ErrSourceUnreadable", err)
	}
}

func TestLoad_PremultipliedSourceIsNormalized(t *testing.T) {
	// image.RGBA stores premultiplied values; 50% red becomes {128,0,0,128}.
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{128, 0, 0, 128})

	path := filepath.Join(t.TempDir(), "premul.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	f.Close()

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, _ := r.Sample(0, 0)
	if got.R != 255 || got.G != 0 || got.B != 0 || got.A != 128 {
		t.Errorf("Sample: got %v, want rgba(255,0,0,128)", got)
	}
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.rasters == nil {
		t.Fatal("NewImageCache did not initialize rasters map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := imagingtest.WritePNG(t, "red.png", imagingtest.Fill(100, 100, imagingtest.Red))

	r1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if r1.Width() != 100 || r1.Height() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", r1.Width(), r1.Height())
	}

	r2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if r1 != r2 {
		t.Error("second Load did not return cached raster")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
	if cache.Len() != 0 {
		t.Error("failed load should not be cached")
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	a := imagingtest.WritePNG(t, "a.png", imagingtest.Fill(5, 5, imagingtest.Green))
	b := imagingtest.WritePNG(t, "b.png", imagingtest.Fill(5, 5, imagingtest.Blue))

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cache.Len())
	}

	cache.Evict(a)
	cache.Evict("/nonexistent/path")
	if cache.Len() != 1 {
		t.Errorf("Len after Evict: got %d, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	path := imagingtest.WritePNG(t, "gray.png", imagingtest.Fill(50, 50, imagingtest.Gray))

	var wg sync.WaitGroup
	results := make(chan *Raster, 100)
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := cache.Load(path)
			if err != nil {
				errs <- err
				return
			}
			results <- r
		}()
	}

	wg.Wait()
	close(errs)
	close(results)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
	var first *Raster
	for r := range results {
		if first == nil {
			first = r
		}
		if r != first {
			t.Error("concurrent loads returned different rasters")
			break
		}
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	path := imagingtest.WritePNG(t, "info.png", imagingtest.Fill(200, 150, imagingtest.Orange))

	info, err := LoadImageInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 200 || info.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Pixels != 30000 {
		t.Errorf("Pixels: got %d, want 30000", info.Pixels)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		path   string
		format string
	}{
		{"a.png", "png"},
		{"a.PNG", "png"},
		{"a.jpg", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.gif", "gif"},
		{"a.bmp", "bmp"},
		{"a.tif", "tiff"},
		{"a.webp", "webp"},
		{"a.xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := formatFromExt(tt.path); got != tt.format {
				t.Errorf("formatFromExt(%s): got %s, want %s", tt.path, got, tt.format)
			}
		})
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	path := imagingtest.WritePNG(t, "dims.png", imagingtest.Fill(300, 200, imagingtest.Gray))

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 300x200", dims.Width, dims.Height)
	}

	if _, err := GetDimensions(cache, "/nonexistent/image.png"); err == nil {
		t.Error("GetDimensions should fail for non-existent file")
	}
}
