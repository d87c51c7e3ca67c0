package draw

import (
	"math"

	"github.com/opd-ai/go-draw/internal/raster"
)

const (
	// thickLineCutoff is the line width, in pixels, below which Line draws
	// a single stroked segment instead of recursing into stamped circles.
	thickLineCutoff = 3.0

	// maxThickLineDepth bounds the bisection recursion. The pixel-delta
	// base case terminates well before this on any real scale; the cap
	// backstops degenerate coordinate ranges.
	maxThickLineDepth = 16
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// pixelLocked stamps one pen-colored pixel at the rounded transform of a
// user coordinate. Callers hold the lock with the surface ensured.
func (c *Canvas) pixelLocked(x, y float64) {
	px := int(math.Round(c.vp.ScaleX(x)))
	py := int(math.Round(c.vp.ScaleY(y)))
	c.surface.SetPixel(px, py, c.pen.color)
}

// strokeWidthLocked is the outline width for ellipse, rectangle and
// polygon calls. A pen radius that rounds to zero yields zero, which the
// shape helpers interpret as a fill.
func (c *Canvas) strokeWidthLocked() int {
	return int(math.Round(c.pen.radius))
}

// Point draws a point at (x, y). With a pen radius of at most one it is a
// single pixel; larger radii stamp a filled disc of that pixel radius.
func (c *Canvas) Point(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()

	if c.pen.radius <= 1.0 {
		c.pixelLocked(x, y)
		return
	}
	xs := c.vp.ScaleX(x)
	ys := c.vp.ScaleY(y)
	c.report(c.surface.FillEllipse(xs, ys, c.pen.radius, c.pen.radius, c.pen.color))
}

// Line draws a line segment from (x0, y0) to (x1, y1). Thin lines are a
// single stroked segment; lines two or more pixels wide are built from
// stamped discs by recursive bisection, so very oblique thin strokes can
// show small gaps.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.lineLocked(x0, y0, x1, y1)
}

func (c *Canvas) lineLocked(x0, y0, x1, y1 float64) {
	lineWidth := 2.0 * c.pen.radius
	if lineWidth == 0 {
		lineWidth = 1
	}
	if lineWidth < thickLineCutoff {
		sx0 := c.vp.ScaleX(x0)
		sy0 := c.vp.ScaleY(y0)
		sx1 := c.vp.ScaleX(x1)
		sy1 := c.vp.ScaleY(y1)
		c.report(c.surface.StrokeLine(sx0, sy0, sx1, sy1, math.Round(lineWidth), c.pen.color))
		return
	}
	c.thickLineLocked(x0, y0, x1, y1, c.pen.radius/DefaultCanvasSize, 0)
}

// thickLineLocked bisects the segment until both pixel deltas drop below
// one, then stamps a filled circle of user-space radius r at the start.
func (c *Canvas) thickLineLocked(x0, y0, x1, y1, r float64, depth int) {
	xs0 := c.vp.ScaleX(x0)
	ys0 := c.vp.ScaleY(y0)
	xs1 := c.vp.ScaleX(x1)
	ys1 := c.vp.ScaleY(y1)
	if depth >= maxThickLineDepth || (math.Abs(xs0-xs1) < 1.0 && math.Abs(ys0-ys1) < 1.0) {
		c.ellipseLocked(x0, y0, r, r, 0)
		return
	}
	xm := (x0 + x1) / 2.0
	ym := (y0 + y1) / 2.0
	c.thickLineLocked(x0, y0, xm, ym, r, depth+1)
	c.thickLineLocked(xm, ym, x1, y1, r, depth+1)
}

// ellipseLocked draws an axis-aligned ellipse centered at the user
// coordinate (x, y) with user-space semi-axes rh (horizontal) and rv
// (vertical). When both pixel extents are at most one it degrades to a
// single pixel. A width of zero fills; otherwise the outline is stroked
// that many pixels wide.
func (c *Canvas) ellipseLocked(x, y, rh, rv float64, width int) {
	ws := c.vp.FactorX(2.0 * rh)
	hs := c.vp.FactorY(2.0 * rv)
	if ws <= 1.0 && hs <= 1.0 {
		c.pixelLocked(x, y)
		return
	}
	xs := c.vp.ScaleX(x)
	ys := c.vp.ScaleY(y)
	if width == 0 {
		c.report(c.surface.FillEllipse(xs, ys, ws/2.0, hs/2.0, c.pen.color))
		return
	}
	c.report(c.surface.StrokeEllipse(xs, ys, ws/2.0, hs/2.0, float64(width), c.pen.color))
}

// Circle draws the outline of a circle of user-space radius r centered at
// (x, y). With unequal axis scales it renders as the corresponding
// ellipse. A pen radius that rounds to zero fills the circle instead.
func (c *Canvas) Circle(x, y, r float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.ellipseLocked(x, y, r, r, c.strokeWidthLocked())
}

// FilledCircle draws a filled circle of user-space radius r centered at
// (x, y).
func (c *Canvas) FilledCircle(x, y, r float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.ellipseLocked(x, y, r, r, 0)
}

// Ellipse draws the outline of an axis-aligned ellipse centered at (x, y)
// with horizontal semi-axis semiMajor and vertical semi-axis semiMinor.
func (c *Canvas) Ellipse(x, y, semiMajor, semiMinor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.ellipseLocked(x, y, semiMajor, semiMinor, c.strokeWidthLocked())
}

// FilledEllipse draws a filled axis-aligned ellipse centered at (x, y).
func (c *Canvas) FilledEllipse(x, y, semiMajor, semiMinor float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.ellipseLocked(x, y, semiMajor, semiMinor, 0)
}

// rectLocked draws an axis-aligned rectangle centered at the user
// coordinate (x, y) with user-space half extents hw and hh. Degrades to a
// pixel when both pixel extents are at most one. A width of zero fills.
func (c *Canvas) rectLocked(x, y, hw, hh float64, width int) {
	ws := c.vp.FactorX(2.0 * hw)
	hs := c.vp.FactorY(2.0 * hh)
	if ws <= 1.0 && hs <= 1.0 {
		c.pixelLocked(x, y)
		return
	}
	xs := c.vp.ScaleX(x - hw)
	ys := c.vp.ScaleY(y - hh)
	if width == 0 {
		c.report(c.surface.FillRect(xs, ys-hs, ws, hs, c.pen.color))
		return
	}
	c.report(c.surface.StrokeRect(xs, ys-hs, ws, hs, float64(width), c.pen.color))
}

// Rectangle draws the outline of an axis-aligned rectangle centered at
// (x, y) with the given user-space half width and half height.
func (c *Canvas) Rectangle(x, y, halfWidth, halfHeight float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.rectLocked(x, y, halfWidth, halfHeight, c.strokeWidthLocked())
}

// FilledRectangle draws a filled axis-aligned rectangle centered at
// (x, y) with the given user-space half width and half height.
func (c *Canvas) FilledRectangle(x, y, halfWidth, halfHeight float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.rectLocked(x, y, halfWidth, halfHeight, 0)
}

// Square draws the outline of a square centered at (x, y) with user-space
// half side length r.
func (c *Canvas) Square(x, y, r float64) {
	c.Rectangle(x, y, r, r)
}

// FilledSquare draws a filled square centered at (x, y) with user-space
// half side length r.
func (c *Canvas) FilledSquare(x, y, r float64) {
	c.FilledRectangle(x, y, r, r)
}

// transformPolygonLocked maps user-space vertices to pixel space and
// hands them to the rasterizer. A width of zero fills.
func (c *Canvas) transformPolygonLocked(uxs, uys []float64, width int) {
	pxs := make([]float64, len(uxs))
	pys := make([]float64, len(uys))
	for i := range uxs {
		pxs[i] = c.vp.ScaleX(uxs[i])
		pys[i] = c.vp.ScaleY(uys[i])
	}
	if width == 0 {
		c.report(c.surface.FillPolygon(pxs, pys, c.pen.color))
		return
	}
	c.report(c.surface.StrokePolygon(pxs, pys, float64(width), c.pen.color))
}

func (c *Canvas) polygon(xs, ys []float64, filled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(xs) != len(ys) {
		return newInvalidArgument("polygon coordinate slices differ in length: %d vs %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return newInvalidArgument("polygon requires at least one vertex")
	}
	c.ensureSurface()

	width := 0
	if !filled {
		width = c.strokeWidthLocked()
	}

	// The first vertex is repeated to close the loop.
	uxs := append(append(make([]float64, 0, len(xs)+1), xs...), xs[0])
	uys := append(append(make([]float64, 0, len(ys)+1), ys...), ys[0])
	c.transformPolygonLocked(uxs, uys, width)
	return nil
}

// Polygon draws the closed outline through the vertices (xs[i], ys[i]) in
// order. It fails with ErrInvalidArgument when the coordinate slices
// differ in length or are empty. A pen radius that rounds to zero fills
// the polygon instead.
func (c *Canvas) Polygon(xs, ys []float64) error {
	return c.polygon(xs, ys, false)
}

// FilledPolygon draws the filled polygon through the vertices
// (xs[i], ys[i]) in order. It fails with ErrInvalidArgument when the
// coordinate slices differ in length or are empty.
func (c *Canvas) FilledPolygon(xs, ys []float64) error {
	return c.polygon(xs, ys, true)
}

// Triangle draws the outline of the triangle with the given vertices.
func (c *Canvas) Triangle(x0, y0, x1, y1, x2, y2 float64) {
	_ = c.Polygon([]float64{x0, x1, x2}, []float64{y0, y1, y2})
}

// FilledTriangle draws the filled triangle with the given vertices.
func (c *Canvas) FilledTriangle(x0, y0, x1, y1, x2, y2 float64) {
	_ = c.FilledPolygon([]float64{x0, x1, x2}, []float64{y0, y1, y2})
}

// Quadrilateral draws the outline of the quadrilateral with the given
// vertices in order.
func (c *Canvas) Quadrilateral(x0, y0, x1, y1, x2, y2, x3, y3 float64) {
	_ = c.Polygon([]float64{x0, x1, x2, x3}, []float64{y0, y1, y2, y3})
}

// FilledQuadrilateral draws the filled quadrilateral with the given
// vertices in order.
func (c *Canvas) FilledQuadrilateral(x0, y0, x1, y1, x2, y2, x3, y3 float64) {
	_ = c.FilledPolygon([]float64{x0, x1, x2, x3}, []float64{y0, y1, y2, y3})
}

// arcLocked approximates an elliptical arc from angle1 to angle2 (degrees,
// counterclockwise) as straight segments drawn with the current pen. The
// segment budget scales with the perimeter's pixel extent.
func (c *Canvas) arcLocked(x, y, rh, rv, angle1, angle2 float64) {
	for angle2-angle1 < 0 {
		angle2 += 360
	}
	circlePoints := 4.0 * (c.vp.FactorX(rh) + c.vp.FactorY(rv))
	numPoints := circlePoints * (angle2 - angle1) / 360.0
	step := 360.0 / circlePoints
	for i := 0; i < int(numPoints); i++ {
		a0 := radians(angle1 + float64(i)*step)
		a1 := radians(angle1 + float64(i+1)*step)
		c.lineLocked(
			x+rh*math.Cos(a0), y+rv*math.Sin(a0),
			x+rh*math.Cos(a1), y+rv*math.Sin(a1),
		)
	}
}

// Arc draws a circular arc of user-space radius r centered at (x, y) from
// angle1 to angle2, in degrees measured counterclockwise from the
// positive x axis. A sweep of 360 or more draws the full circle.
func (c *Canvas) Arc(x, y, r, angle1, angle2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.arcLocked(x, y, r, r, angle1, angle2)
}

// EllipticalArc draws an elliptical arc centered at (x, y) with
// horizontal semi-axis semiMajor and vertical semi-axis semiMinor, from
// angle1 to angle2 in degrees.
func (c *Canvas) EllipticalArc(x, y, semiMajor, semiMinor, angle1, angle2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.arcLocked(x, y, semiMajor, semiMinor, angle1, angle2)
}

// sectorLocked draws the pie wedge between angle1 and angle2 as a closed
// polygon: the center, sampled perimeter points, an explicit point at
// angle2, and the center again.
func (c *Canvas) sectorLocked(x, y, rh, rv, angle1, angle2 float64, width int) {
	for angle2-angle1 < 0 {
		angle2 += 360
	}
	circlePoints := 4.0 * (c.vp.FactorX(rh) + c.vp.FactorY(rv))
	numPoints := circlePoints * (angle2 - angle1) / 360.0
	n := int(numPoints)

	capHint := n + 4
	if capHint < 4 {
		capHint = 4
	}
	uxs := make([]float64, 0, capHint)
	uys := make([]float64, 0, capHint)

	uxs = append(uxs, x)
	uys = append(uys, y)
	step := 360.0 / circlePoints
	for i := 0; i <= n; i++ {
		a := radians(angle1 + float64(i)*step)
		uxs = append(uxs, x+rh*math.Cos(a))
		uys = append(uys, y+rv*math.Sin(a))
	}
	a2 := radians(angle2)
	uxs = append(uxs, x+rh*math.Cos(a2))
	uys = append(uys, y+rv*math.Sin(a2))
	uxs = append(uxs, x)
	uys = append(uys, y)

	c.transformPolygonLocked(uxs, uys, width)
}

// Sector draws the outline of a pie wedge of user-space radius r centered
// at (x, y), from angle1 to angle2 in degrees. A pen radius that rounds
// to zero fills the wedge instead.
func (c *Canvas) Sector(x, y, r, angle1, angle2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.sectorLocked(x, y, r, r, angle1, angle2, c.strokeWidthLocked())
}

// FilledSector draws a filled pie wedge of user-space radius r centered
// at (x, y), from angle1 to angle2 in degrees.
func (c *Canvas) FilledSector(x, y, r, angle1, angle2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.sectorLocked(x, y, r, r, angle1, angle2, 0)
}

// EllipticalSector draws the outline of an elliptical pie wedge centered
// at (x, y) with semi-axes semiMajor and semiMinor, from angle1 to angle2
// in degrees.
func (c *Canvas) EllipticalSector(x, y, semiMajor, semiMinor, angle1, angle2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.sectorLocked(x, y, semiMajor, semiMinor, angle1, angle2, c.strokeWidthLocked())
}

// FilledEllipticalSector draws a filled elliptical pie wedge centered at
// (x, y) with semi-axes semiMajor and semiMinor, from angle1 to angle2 in
// degrees.
func (c *Canvas) FilledEllipticalSector(x, y, semiMajor, semiMinor, angle1, angle2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	c.sectorLocked(x, y, semiMajor, semiMinor, angle1, angle2, 0)
}

// Annulus draws the outlines of two concentric circles of user-space
// radii r1 (outer) and r2 (inner) centered at (x, y).
func (c *Canvas) Annulus(x, y, r1, r2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()
	width := c.strokeWidthLocked()
	c.ellipseLocked(x, y, r1, r1, width)
	c.ellipseLocked(x, y, r2, r2, width)
}

// FilledAnnulus draws a filled ring between the outer radius r1 and the
// inner radius r2, centered at (x, y). The ring is a single polygon
// tracing the outer circle forward and the inner circle backward, with
// bridge points at angle zero, so the reversed inner winding cuts the
// hole.
func (c *Canvas) FilledAnnulus(x, y, r1, r2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()

	c1 := 4.0 * (c.vp.FactorX(r1) + c.vp.FactorY(r1))
	c2 := 4.0 * (c.vp.FactorX(r2) + c.vp.FactorY(r2))
	outer := int(c1)
	inner := int(c2)

	capHint := outer + inner + 6
	if capHint < 6 {
		capHint = 6
	}
	uxs := make([]float64, 0, capHint)
	uys := make([]float64, 0, capHint)

	for i := 0; i <= outer; i++ {
		a := radians(float64(i) * 360.0 / c1)
		uxs = append(uxs, x+r1*math.Cos(a))
		uys = append(uys, y+r1*math.Sin(a))
	}
	uxs = append(uxs, x+r1)
	uys = append(uys, y)
	uxs = append(uxs, x+r2)
	uys = append(uys, y)
	for i := 0; i <= inner; i++ {
		a := radians(-float64(i) * 360.0 / c2)
		uxs = append(uxs, x+r2*math.Cos(a))
		uys = append(uys, y+r2*math.Sin(a))
	}
	uxs = append(uxs, x+r2)
	uys = append(uys, y)
	uxs = append(uxs, x+r1)
	uys = append(uys, y)

	c.transformPolygonLocked(uxs, uys, 0)
}

// Text renders s centered at the user coordinate (x, y) with the current
// font family, size and pen color.
func (c *Canvas) Text(x, y float64, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()

	face, err := c.fonts.Face(c.pen.fontFamily, raster.FontStyleRegular, float64(c.pen.fontSize))
	if err != nil {
		c.report(err)
		return
	}
	c.surface.Text(s, c.vp.ScaleX(x), c.vp.ScaleY(y), face, c.pen.color)
}
