// Package raster provides the CPU rasterization capability behind the canvas.
package raster

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg/text"
)

// Face is a sized font face ready for text rendering.
type Face = text.Face

// Surface is the pixel surface drawing operations render onto. The
// production implementation wraps a software gg context; tests substitute
// a recording implementation to verify emitted geometry.
//
// Coordinates are pixels with the origin at the top-left corner and Y
// growing downward. A stroke width of 0 is reserved by callers to mean
// "fill instead"; implementations never receive it on stroke calls.
//
// Implementations are not safe for concurrent use. The canvas serializes
// access.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// SetPixel writes a single pixel. Out-of-bounds writes are ignored.
	SetPixel(x, y int, c color.RGBA)

	// PixelAt reads a single pixel. Out-of-bounds reads return the zero color.
	PixelAt(x, y int) color.RGBA

	// StrokeLine strokes a straight segment with the given width.
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) error

	// FillEllipse fills the axis-aligned ellipse centered at (cx, cy).
	FillEllipse(cx, cy, rx, ry float64, c color.RGBA) error

	// StrokeEllipse outlines the axis-aligned ellipse centered at (cx, cy).
	StrokeEllipse(cx, cy, rx, ry, width float64, c color.RGBA) error

	// FillRect fills the rectangle with top-left corner (x, y).
	FillRect(x, y, w, h float64, c color.RGBA) error

	// StrokeRect outlines the rectangle with top-left corner (x, y).
	StrokeRect(x, y, w, h, width float64, c color.RGBA) error

	// FillPolygon fills the polygon through the given vertices.
	FillPolygon(xs, ys []float64, c color.RGBA) error

	// StrokePolygon outlines the polygon through the given vertices.
	StrokePolygon(xs, ys []float64, width float64, c color.RGBA) error

	// Text renders a string centered at (cx, cy) with the given face.
	Text(s string, cx, cy float64, f Face, c color.RGBA)

	// DrawImage blits an image with its top-left corner at (x, y) at
	// native pixel size.
	DrawImage(img image.Image, x, y float64)

	// Clear fills the whole surface with a color.
	Clear(c color.RGBA)

	// Snapshot returns a copy of the surface contents.
	Snapshot() *image.RGBA

	// EncodePNG writes the surface contents as PNG.
	EncodePNG(w io.Writer) error

	// EncodeJPEG writes the surface contents as JPEG.
	EncodeJPEG(w io.Writer) error
}
