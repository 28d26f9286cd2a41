// Package imaging loads raster images and reads their pixels as exact RGBA
// samples.
//
// Images are opened with github.com/disintegration/imaging, so PNG, JPEG and
// GIF are supported together with BMP, TIFF and WebP from golang.org/x/image.
// JPEG EXIF orientation is applied on load. Every decoded image is converted
// to non-premultiplied 8-bit NRGBA, which makes a sample independent of the
// file's native color model: a transparent pixel keeps its color channels.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Sampling outside the image returns an error wrapping
// errdefs.ErrIndexOutOfRange.
//
// # Thread Safety
//
// Raster is read-only after construction and ImageCache is safe for
// concurrent use, so both may be shared between goroutines.
//
// # Color Analysis
//
//   - Census: pixel count per exact sample, most frequent first
//   - Distinct: every distinct sample, in channel order
//   - Swatch / SaveSwatch: a PNG strip with one square per color
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Evict() and Clear() release cached rasters in long-running processes.
package imaging
