package draw

import (
	"image/color"
	"sync"

	"github.com/opd-ai/go-draw/internal/geom"
	"github.com/opd-ai/go-draw/internal/raster"
	"github.com/opd-ai/go-draw/internal/render"
)

// Pen state defaults installed by NewCanvas.
const (
	// DefaultPenRadius corresponds to a one pixel radius on the canvas.
	DefaultPenRadius = 1.0

	// DefaultFontFamily is the family new canvases render text with. It
	// resolves to an embedded font through the family alias table.
	DefaultFontFamily = "Helvetica"

	// DefaultFontSize is the point size new canvases render text with.
	DefaultFontSize = 12
)

// penState carries the drawing attributes applied to subsequent calls.
type penState struct {
	color      color.RGBA
	radius     float64
	fontFamily string
	fontSize   int
}

func defaultPen() penState {
	return penState{
		color:      Black,
		radius:     DefaultPenRadius,
		fontFamily: DefaultFontFamily,
		fontSize:   DefaultFontSize,
	}
}

// Canvas is an offscreen drawing surface with a user-defined coordinate
// scale. Drawing calls rasterize immediately onto the surface; nothing is
// visible until Show presents it in a window started by Run.
//
// The zero configuration is valid: NewCanvas(nil) defers surface
// allocation to the first drawing call, which installs the
// DefaultCanvasSize square surface, a 0..1 coordinate scale on both axes,
// a black pen of radius 1, and a white background. A canvas constructed
// directly, rather than through Run, is headless: every operation works
// except presenting.
//
// Methods are safe for concurrent use, though the intended model is a
// single drawing goroutine.
type Canvas struct {
	mu         sync.Mutex
	log        Logger
	vp         geom.Viewport
	surface    raster.Surface
	sized      bool
	newSurface func(width, height int) raster.Surface
	fonts      *raster.FontManager
	pen        penState
	game       *render.Game
	prompter   Prompter
	onError    func(error)
}

// NewCanvas creates a headless canvas. A nil opts means DefaultOptions().
// When opts carries explicit dimensions the surface is allocated
// immediately; otherwise allocation happens at first use.
func NewCanvas(opts *Options) *Canvas {
	o := opts.normalized()

	c := &Canvas{
		log: o.Logger,
		vp:  geom.NewViewport(DefaultCanvasSize, DefaultCanvasSize),
		newSurface: func(width, height int) raster.Surface {
			return raster.NewPixmap(width, height)
		},
		fonts:    raster.NewFontManager(),
		pen:      defaultPen(),
		prompter: o.Prompter,
	}
	c.onError = func(err error) {
		c.log.Error("rasterizer error", "error", err)
	}

	if sa, ok := o.Logger.(*SlogAdapter); ok {
		raster.SetLogger(sa.Slog())
	}

	if o.Width > 0 && o.Height > 0 {
		c.mu.Lock()
		c.allocate(o.Width, o.Height)
		c.mu.Unlock()
	}
	return c
}

// allocate creates the surface and fills it white. Callers hold the lock.
func (c *Canvas) allocate(width, height int) {
	c.vp.Resize(float64(width), float64(height))
	c.surface = c.newSurface(width, height)
	c.surface.Clear(White)
	c.sized = true
	c.log.Debug("canvas allocated", "width", width, "height", height)
}

// ensureSurface lazily installs the default surface. Callers hold the lock.
func (c *Canvas) ensureSurface() {
	if c.surface == nil {
		c.allocate(DefaultCanvasSize, DefaultCanvasSize)
	}
	c.sized = true
}

// report routes a non-fatal rasterizer error to the error handler.
// Callers hold the lock.
func (c *Canvas) report(err error) {
	if err != nil && c.onError != nil {
		c.onError(err)
	}
}

// SetErrorHandler installs a handler for non-fatal internal errors, such
// as rasterizer stroke failures. The default handler logs them at error
// level. Passing nil silences them.
func (c *Canvas) SetErrorHandler(handler func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = handler
}

// SetCanvasSize allocates the drawing surface with the given dimensions
// and fills it white. It fails with ErrAlreadyInitialized once the surface
// exists, whether allocated explicitly or by a prior drawing call, and
// with ErrInvalidArgument for dimensions below one pixel.
func (c *Canvas) SetCanvasSize(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sized {
		w, h := c.surface.Size()
		return newAlreadyInitialized(w, h)
	}
	if width < 1 || height < 1 {
		return newInvalidArgument("canvas size must be at least 1x1, got %dx%d", width, height)
	}
	c.allocate(width, height)
	return nil
}

// Reset returns the canvas to its startup drawing state: default pen,
// font, and coordinate scales, a white surface, and permission to size
// the canvas once more. Hosts that run sketches repeatedly against one
// window, such as a live-reloading runner, call it between runs. The
// window keeps its original dimensions, so a rerun that picks a new
// canvas size draws offscreen at that size without being presented.
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pen = defaultPen()
	c.vp.SetXRange(geom.DefaultXMin, geom.DefaultXMax)
	c.vp.SetYRange(geom.DefaultYMin, geom.DefaultYMax)
	if c.surface != nil {
		c.surface.Clear(White)
	}
	c.sized = false
}

// CanvasWidth returns the surface width in pixels.
func (c *Canvas) CanvasWidth() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp.Width()
}

// CanvasHeight returns the surface height in pixels.
func (c *Canvas) CanvasHeight() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp.Height()
}

// SetXScale sets the horizontal user coordinate range. It fails with
// ErrInvalidArgument unless min < max.
func (c *Canvas) SetXScale(min, max float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.vp.SetXRange(min, max); err != nil {
		return newInvalidArgument("x scale [%v, %v]: %v", min, max, err)
	}
	return nil
}

// SetYScale sets the vertical user coordinate range. It fails with
// ErrInvalidArgument unless min < max.
func (c *Canvas) SetYScale(min, max float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.vp.SetYRange(min, max); err != nil {
		return newInvalidArgument("y scale [%v, %v]: %v", min, max, err)
	}
	return nil
}

// SetScale sets both coordinate ranges at once.
func (c *Canvas) SetScale(min, max float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.vp.SetXRange(min, max); err != nil {
		return newInvalidArgument("scale [%v, %v]: %v", min, max, err)
	}
	if err := c.vp.SetYRange(min, max); err != nil {
		return newInvalidArgument("scale [%v, %v]: %v", min, max, err)
	}
	return nil
}

// XScale returns the horizontal user coordinate range.
func (c *Canvas) XScale() (min, max float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp.XRange()
}

// YScale returns the vertical user coordinate range.
func (c *Canvas) YScale() (min, max float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp.YRange()
}

// SetPenColor sets the color applied to subsequent drawing calls.
func (c *Canvas) SetPenColor(clr color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pen.color = clr
}

// SetPenColorRGB sets the pen color from 8-bit components, fully opaque.
func (c *Canvas) SetPenColorRGB(r, g, b uint8) {
	c.SetPenColor(color.RGBA{R: r, G: g, B: b, A: 255})
}

// PenColor returns the current pen color.
func (c *Canvas) PenColor() color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pen.color
}

// SetPenRadius sets the pen radius in pixels. A radius of 1.0 draws one
// pixel wide. It fails with ErrInvalidArgument for negative values.
func (c *Canvas) SetPenRadius(r float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r < 0 {
		return newInvalidArgument("pen radius must be non-negative, got %v", r)
	}
	c.pen.radius = r
	return nil
}

// PenRadius returns the current pen radius.
func (c *Canvas) PenRadius() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pen.radius
}

// SetFontFamily sets the text font family. Familiar names such as
// "Helvetica" and "Courier" resolve to embedded fonts; unknown names fall
// back to the default family at render time.
func (c *Canvas) SetFontFamily(family string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pen.fontFamily = family
}

// FontFamily returns the current text font family.
func (c *Canvas) FontFamily() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pen.fontFamily
}

// SetFontSize sets the text point size. It fails with ErrInvalidArgument
// for sizes below one.
func (c *Canvas) SetFontSize(size int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size < 1 {
		return newInvalidArgument("font size must be positive, got %d", size)
	}
	c.pen.fontSize = size
	return nil
}

// FontSize returns the current text point size.
func (c *Canvas) FontSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pen.fontSize
}

// RegisterFont parses TTF/OTF data and registers it as a font family for
// SetFontFamily.
func (c *Canvas) RegisterFont(family string, data []byte) error {
	return c.fonts.RegisterFont(family, raster.FontStyleRegular, data)
}

// LoadFontFile reads a TTF/OTF file and registers it as a font family for
// SetFontFamily.
func (c *Canvas) LoadFontFile(family, path string) error {
	return c.fonts.LoadFontFile(family, raster.FontStyleRegular, path)
}

// PixelColor returns the color of the surface pixel the user coordinate
// maps to.
func (c *Canvas) PixelColor(x, y float64) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	return c.surface.PixelAt(int(c.vp.ScaleX(x)), int(c.vp.ScaleY(y)))
}

// Clear fills the whole surface with a color.
func (c *Canvas) Clear(clr color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.surface.Clear(clr)
}

// ClearDefault fills the whole surface with white.
func (c *Canvas) ClearDefault() {
	c.Clear(White)
}

// ClearRGB fills the whole surface with a color given as 8-bit components.
func (c *Canvas) ClearRGB(r, g, b uint8) {
	c.Clear(color.RGBA{R: r, G: g, B: b, A: 255})
}
