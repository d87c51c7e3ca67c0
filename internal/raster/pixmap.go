package raster

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"io"
	"log/slog"

	"github.com/gogpu/gg"
)

// jpegQuality is the encoder quality used for JPEG output.
const jpegQuality = 95

// Pixmap is the production Surface backed by a software gg context.
type Pixmap struct {
	ctx    *gg.Context
	width  int
	height int
}

// NewPixmap allocates a pixel surface of the given dimensions. The surface
// starts fully transparent; callers clear it to their background color.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		ctx:    gg.NewContext(width, height),
		width:  width,
		height: height,
	}
}

// SetLogger routes the rasterizer's internal diagnostics to the given
// slog logger. Pass nil to silence it.
func SetLogger(l *slog.Logger) {
	gg.SetLogger(l)
}

// Size returns the surface dimensions in pixels.
func (p *Pixmap) Size() (int, int) {
	return p.width, p.height
}

// SetPixel writes a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c color.RGBA) {
	p.ctx.SetPixel(x, y, gg.FromColor(c))
}

// PixelAt reads a single pixel. Out-of-bounds reads return the zero color.
func (p *Pixmap) PixelAt(x, y int) color.RGBA {
	px := p.ctx.ResizeTarget().GetPixel(x, y)
	return color.RGBA{
		R: uint8(px.R*255 + 0.5),
		G: uint8(px.G*255 + 0.5),
		B: uint8(px.B*255 + 0.5),
		A: uint8(px.A*255 + 0.5),
	}
}

// StrokeLine strokes a straight segment with the given width.
func (p *Pixmap) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) error {
	p.ctx.SetColor(c)
	p.ctx.SetLineWidth(width)
	p.ctx.DrawLine(x0, y0, x1, y1)
	return p.ctx.Stroke()
}

// FillEllipse fills the axis-aligned ellipse centered at (cx, cy).
func (p *Pixmap) FillEllipse(cx, cy, rx, ry float64, c color.RGBA) error {
	p.ctx.SetColor(c)
	p.ctx.DrawEllipse(cx, cy, rx, ry)
	return p.ctx.Fill()
}

// StrokeEllipse outlines the axis-aligned ellipse centered at (cx, cy).
func (p *Pixmap) StrokeEllipse(cx, cy, rx, ry, width float64, c color.RGBA) error {
	p.ctx.SetColor(c)
	p.ctx.SetLineWidth(width)
	p.ctx.DrawEllipse(cx, cy, rx, ry)
	return p.ctx.Stroke()
}

// FillRect fills the rectangle with top-left corner (x, y).
func (p *Pixmap) FillRect(x, y, w, h float64, c color.RGBA) error {
	p.ctx.SetColor(c)
	p.ctx.DrawRectangle(x, y, w, h)
	return p.ctx.Fill()
}

// StrokeRect outlines the rectangle with top-left corner (x, y).
func (p *Pixmap) StrokeRect(x, y, w, h, width float64, c color.RGBA) error {
	p.ctx.SetColor(c)
	p.ctx.SetLineWidth(width)
	p.ctx.DrawRectangle(x, y, w, h)
	return p.ctx.Stroke()
}

// FillPolygon fills the polygon through the given vertices. The default
// non-zero winding rule applies, so a sub-loop traced in the opposite
// direction cuts a hole.
func (p *Pixmap) FillPolygon(xs, ys []float64, c color.RGBA) error {
	if len(xs) == 0 {
		return nil
	}
	p.ctx.SetColor(c)
	p.tracePolygon(xs, ys)
	return p.ctx.Fill()
}

// StrokePolygon outlines the polygon through the given vertices.
func (p *Pixmap) StrokePolygon(xs, ys []float64, width float64, c color.RGBA) error {
	if len(xs) == 0 {
		return nil
	}
	p.ctx.SetColor(c)
	p.ctx.SetLineWidth(width)
	p.tracePolygon(xs, ys)
	return p.ctx.Stroke()
}

func (p *Pixmap) tracePolygon(xs, ys []float64) {
	p.ctx.ClearPath()
	p.ctx.MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		p.ctx.LineTo(xs[i], ys[i])
	}
	p.ctx.ClosePath()
}

// Text renders a string centered at (cx, cy) with the given face.
// Without a face the call is a no-op.
func (p *Pixmap) Text(s string, cx, cy float64, f Face, c color.RGBA) {
	if f == nil {
		return
	}
	p.ctx.SetFont(f)
	p.ctx.SetColor(c)
	p.ctx.DrawStringAnchored(s, cx, cy, 0.5, 0.5)
}

// DrawImage blits an image with its top-left corner at (x, y) at native
// pixel size.
func (p *Pixmap) DrawImage(img image.Image, x, y float64) {
	p.ctx.DrawImage(gg.ImageBufFromImage(img), x, y)
}

// Clear fills the whole surface with a color.
func (p *Pixmap) Clear(c color.RGBA) {
	p.ctx.ClearWithColor(gg.FromColor(c))
}

// Snapshot returns a copy of the surface contents.
func (p *Pixmap) Snapshot() *image.RGBA {
	img := p.ctx.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	stddraw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, stddraw.Src)
	return rgba
}

// EncodePNG writes the surface contents as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return p.ctx.EncodePNG(w)
}

// EncodeJPEG writes the surface contents as JPEG.
func (p *Pixmap) EncodeJPEG(w io.Writer) error {
	return p.ctx.EncodeJPEG(w, jpegQuality)
}
