package script

import (
	"context"
	"fmt"
	"math"
	"time"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-draw/pkg/draw"
)

// showPollInterval is how often an open-ended show wakes up to check for
// cancellation, so live reload can interrupt a finished sketch.
const showPollInterval = 100 * time.Millisecond

// Bindings exposes one canvas to Lua as the global draw table. Each
// sketch run gets fresh bindings so the table always refers to the
// current canvas and run context.
type Bindings struct {
	ctx    context.Context
	canvas *draw.Canvas
	pics   map[string]*draw.Image
}

func newBindings(ctx context.Context, canvas *draw.Canvas) *Bindings {
	return &Bindings{
		ctx:    ctx,
		canvas: canvas,
		pics:   make(map[string]*draw.Image),
	}
}

// register builds the draw table and installs it as a global.
func (b *Bindings) register(runtime *rt.Runtime) {
	tbl := rt.NewTable()

	// Canvas and scale.
	setTableFunc(tbl, "set_canvas_size", b.setCanvasSize, 2, false)
	setTableFunc(tbl, "canvas_width", b.canvasWidth, 0, false)
	setTableFunc(tbl, "canvas_height", b.canvasHeight, 0, false)
	setTableFunc(tbl, "set_x_scale", b.setXScale, 2, false)
	setTableFunc(tbl, "set_y_scale", b.setYScale, 2, false)
	setTableFunc(tbl, "set_scale", b.setScale, 2, false)
	setTableFunc(tbl, "clear", b.clear, 0, true)
	setTableFunc(tbl, "clear_rgb", b.clearRGB, 3, false)

	// Pen and font state.
	setTableFunc(tbl, "set_pen_color", b.setPenColor, 1, false)
	setTableFunc(tbl, "set_pen_color_rgb", b.setPenColorRGB, 3, false)
	setTableFunc(tbl, "set_pen_radius", b.setPenRadius, 1, false)
	setTableFunc(tbl, "set_font_family", b.setFontFamily, 1, false)
	setTableFunc(tbl, "set_font_size", b.setFontSize, 1, false)

	// Shapes.
	setTableFunc(tbl, "point", b.point, 2, false)
	setTableFunc(tbl, "line", b.line, 4, false)
	setTableFunc(tbl, "circle", b.circle, 3, false)
	setTableFunc(tbl, "filled_circle", b.filledCircle, 3, false)
	setTableFunc(tbl, "ellipse", b.ellipse, 4, false)
	setTableFunc(tbl, "filled_ellipse", b.filledEllipse, 4, false)
	setTableFunc(tbl, "rectangle", b.rectangle, 4, false)
	setTableFunc(tbl, "filled_rectangle", b.filledRectangle, 4, false)
	setTableFunc(tbl, "square", b.square, 3, false)
	setTableFunc(tbl, "filled_square", b.filledSquare, 3, false)
	setTableFunc(tbl, "triangle", b.triangle, 6, false)
	setTableFunc(tbl, "filled_triangle", b.filledTriangle, 6, false)
	setTableFunc(tbl, "quadrilateral", b.quadrilateral, 8, false)
	setTableFunc(tbl, "filled_quadrilateral", b.filledQuadrilateral, 8, false)
	setTableFunc(tbl, "polygon", b.polygon, 2, false)
	setTableFunc(tbl, "filled_polygon", b.filledPolygon, 2, false)
	setTableFunc(tbl, "arc", b.arc, 5, false)
	setTableFunc(tbl, "elliptical_arc", b.ellipticalArc, 6, false)
	setTableFunc(tbl, "sector", b.sector, 5, false)
	setTableFunc(tbl, "filled_sector", b.filledSector, 5, false)
	setTableFunc(tbl, "elliptical_sector", b.ellipticalSector, 6, false)
	setTableFunc(tbl, "filled_elliptical_sector", b.filledEllipticalSector, 6, false)
	setTableFunc(tbl, "annulus", b.annulus, 4, false)
	setTableFunc(tbl, "filled_annulus", b.filledAnnulus, 4, false)
	setTableFunc(tbl, "text", b.text, 3, false)

	// Pixels, pictures, saving.
	setTableFunc(tbl, "pixel_color", b.pixelColor, 2, false)
	setTableFunc(tbl, "picture", b.picture, 1, true)
	setTableFunc(tbl, "save", b.save, 0, true)

	// Events.
	setTableFunc(tbl, "has_next_key_typed", b.hasNextKeyTyped, 0, false)
	setTableFunc(tbl, "next_key_typed", b.nextKeyTyped, 0, false)
	setTableFunc(tbl, "mouse_pressed", b.mousePressed, 0, false)
	setTableFunc(tbl, "mouse_x", b.mouseX, 0, false)
	setTableFunc(tbl, "mouse_y", b.mouseY, 0, false)

	// Presentation.
	setTableFunc(tbl, "show", b.show, 0, true)
	setTableFunc(tbl, "show_forever", b.showForever, 0, false)

	runtime.GlobalEnv().Set(rt.StringValue("draw"), rt.TableValue(tbl))
}

// setTableFunc registers a Go function in a Lua table.
func setTableFunc(table *rt.Table, name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	table.Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// getAllArgs combines Args() and Etc() to get all arguments including
// varargs.
func getAllArgs(c *rt.GoCont) []rt.Value {
	return append(c.Args(), c.Etc()...)
}

func floatArg(args []rt.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if f, ok := args[idx].TryFloat(); ok {
		return f, nil
	}
	if i, ok := args[idx].TryInt(); ok {
		return float64(i), nil
	}
	return 0, fmt.Errorf("argument %d is not a number", idx+1)
}

func intArg(args []rt.Value, idx int) (int64, error) {
	if idx >= len(args) {
		return 0, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if i, ok := args[idx].TryInt(); ok {
		return i, nil
	}
	if f, ok := args[idx].TryFloat(); ok {
		return int64(f), nil
	}
	return 0, fmt.Errorf("argument %d is not an integer", idx+1)
}

func stringArg(args []rt.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	if s, ok := args[idx].TryString(); ok {
		return s, nil
	}
	return "", fmt.Errorf("argument %d is not a string", idx+1)
}

func colorComponentArg(args []rt.Value, idx int, name string) (uint8, error) {
	v, err := intArg(args, idx)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%s component must be 0-255, got %d", name, v)
	}
	return uint8(v), nil
}

// floatSliceArg reads a Lua array table of numbers.
func floatSliceArg(args []rt.Value, idx int) ([]float64, error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("argument %d out of range (have %d)", idx+1, len(args))
	}
	tbl, ok := args[idx].TryTable()
	if !ok {
		return nil, fmt.Errorf("argument %d is not a table", idx+1)
	}
	n := tbl.Len()
	out := make([]float64, 0, n)
	for i := int64(1); i <= n; i++ {
		v := tbl.Get(rt.IntValue(i))
		f, ok := v.TryFloat()
		if !ok {
			iv, iok := v.TryInt()
			if !iok {
				return nil, fmt.Errorf("argument %d element %d is not a number", idx+1, i)
			}
			f = float64(iv)
		}
		out = append(out, f)
	}
	return out, nil
}

// floatArgs reads n consecutive numeric arguments starting at 0.
func floatArgs(c *rt.GoCont, n int) ([]float64, error) {
	args := getAllArgs(c)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := floatArg(args, i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// --- Canvas and scale ---

func (b *Bindings) setCanvasSize(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	w, err := intArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("set_canvas_size: %w", err)
	}
	h, err := intArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("set_canvas_size: %w", err)
	}
	if err := b.canvas.SetCanvasSize(int(w), int(h)); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) canvasWidth(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.FloatValue(b.canvas.CanvasWidth())), nil
}

func (b *Bindings) canvasHeight(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.FloatValue(b.canvas.CanvasHeight())), nil
}

func (b *Bindings) setXScale(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 2)
	if err != nil {
		return nil, fmt.Errorf("set_x_scale: %w", err)
	}
	if err := b.canvas.SetXScale(v[0], v[1]); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) setYScale(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 2)
	if err != nil {
		return nil, fmt.Errorf("set_y_scale: %w", err)
	}
	if err := b.canvas.SetYScale(v[0], v[1]); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) setScale(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 2)
	if err != nil {
		return nil, fmt.Errorf("set_scale: %w", err)
	}
	if err := b.canvas.SetScale(v[0], v[1]); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) clear(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	if len(args) == 0 {
		b.canvas.ClearDefault()
		return c.Next(), nil
	}
	spec, err := stringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("clear: %w", err)
	}
	clr, err := draw.ParseColor(spec)
	if err != nil {
		return nil, fmt.Errorf("clear: %w", err)
	}
	b.canvas.Clear(clr)
	return c.Next(), nil
}

func (b *Bindings) clearRGB(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	r, err := colorComponentArg(args, 0, "red")
	if err != nil {
		return nil, fmt.Errorf("clear_rgb: %w", err)
	}
	g, err := colorComponentArg(args, 1, "green")
	if err != nil {
		return nil, fmt.Errorf("clear_rgb: %w", err)
	}
	bl, err := colorComponentArg(args, 2, "blue")
	if err != nil {
		return nil, fmt.Errorf("clear_rgb: %w", err)
	}
	b.canvas.ClearRGB(r, g, bl)
	return c.Next(), nil
}

// --- Pen and font state ---

func (b *Bindings) setPenColor(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	spec, err := stringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("set_pen_color: %w", err)
	}
	clr, err := draw.ParseColor(spec)
	if err != nil {
		return nil, fmt.Errorf("set_pen_color: %w", err)
	}
	b.canvas.SetPenColor(clr)
	return c.Next(), nil
}

func (b *Bindings) setPenColorRGB(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	r, err := colorComponentArg(args, 0, "red")
	if err != nil {
		return nil, fmt.Errorf("set_pen_color_rgb: %w", err)
	}
	g, err := colorComponentArg(args, 1, "green")
	if err != nil {
		return nil, fmt.Errorf("set_pen_color_rgb: %w", err)
	}
	bl, err := colorComponentArg(args, 2, "blue")
	if err != nil {
		return nil, fmt.Errorf("set_pen_color_rgb: %w", err)
	}
	b.canvas.SetPenColorRGB(r, g, bl)
	return c.Next(), nil
}

func (b *Bindings) setPenRadius(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 1)
	if err != nil {
		return nil, fmt.Errorf("set_pen_radius: %w", err)
	}
	if err := b.canvas.SetPenRadius(v[0]); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) setFontFamily(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	family, err := stringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("set_font_family: %w", err)
	}
	b.canvas.SetFontFamily(family)
	return c.Next(), nil
}

func (b *Bindings) setFontSize(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	size, err := intArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("set_font_size: %w", err)
	}
	if err := b.canvas.SetFontSize(int(size)); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

// --- Shapes ---

func (b *Bindings) point(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 2)
	if err != nil {
		return nil, fmt.Errorf("point: %w", err)
	}
	b.canvas.Point(v[0], v[1])
	return c.Next(), nil
}

func (b *Bindings) line(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}
	b.canvas.Line(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) circle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 3)
	if err != nil {
		return nil, fmt.Errorf("circle: %w", err)
	}
	b.canvas.Circle(v[0], v[1], v[2])
	return c.Next(), nil
}

func (b *Bindings) filledCircle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 3)
	if err != nil {
		return nil, fmt.Errorf("filled_circle: %w", err)
	}
	b.canvas.FilledCircle(v[0], v[1], v[2])
	return c.Next(), nil
}

func (b *Bindings) ellipse(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("ellipse: %w", err)
	}
	b.canvas.Ellipse(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) filledEllipse(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("filled_ellipse: %w", err)
	}
	b.canvas.FilledEllipse(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) rectangle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("rectangle: %w", err)
	}
	b.canvas.Rectangle(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) filledRectangle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("filled_rectangle: %w", err)
	}
	b.canvas.FilledRectangle(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) square(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 3)
	if err != nil {
		return nil, fmt.Errorf("square: %w", err)
	}
	b.canvas.Square(v[0], v[1], v[2])
	return c.Next(), nil
}

func (b *Bindings) filledSquare(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 3)
	if err != nil {
		return nil, fmt.Errorf("filled_square: %w", err)
	}
	b.canvas.FilledSquare(v[0], v[1], v[2])
	return c.Next(), nil
}

func (b *Bindings) triangle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 6)
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	b.canvas.Triangle(v[0], v[1], v[2], v[3], v[4], v[5])
	return c.Next(), nil
}

func (b *Bindings) filledTriangle(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 6)
	if err != nil {
		return nil, fmt.Errorf("filled_triangle: %w", err)
	}
	b.canvas.FilledTriangle(v[0], v[1], v[2], v[3], v[4], v[5])
	return c.Next(), nil
}

func (b *Bindings) quadrilateral(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 8)
	if err != nil {
		return nil, fmt.Errorf("quadrilateral: %w", err)
	}
	b.canvas.Quadrilateral(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
	return c.Next(), nil
}

func (b *Bindings) filledQuadrilateral(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 8)
	if err != nil {
		return nil, fmt.Errorf("filled_quadrilateral: %w", err)
	}
	b.canvas.FilledQuadrilateral(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
	return c.Next(), nil
}

func (b *Bindings) polygon(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	xs, err := floatSliceArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}
	ys, err := floatSliceArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}
	if err := b.canvas.Polygon(xs, ys); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) filledPolygon(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	xs, err := floatSliceArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("filled_polygon: %w", err)
	}
	ys, err := floatSliceArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("filled_polygon: %w", err)
	}
	if err := b.canvas.FilledPolygon(xs, ys); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) arc(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 5)
	if err != nil {
		return nil, fmt.Errorf("arc: %w", err)
	}
	b.canvas.Arc(v[0], v[1], v[2], v[3], v[4])
	return c.Next(), nil
}

func (b *Bindings) ellipticalArc(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 6)
	if err != nil {
		return nil, fmt.Errorf("elliptical_arc: %w", err)
	}
	b.canvas.EllipticalArc(v[0], v[1], v[2], v[3], v[4], v[5])
	return c.Next(), nil
}

func (b *Bindings) sector(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 5)
	if err != nil {
		return nil, fmt.Errorf("sector: %w", err)
	}
	b.canvas.Sector(v[0], v[1], v[2], v[3], v[4])
	return c.Next(), nil
}

func (b *Bindings) filledSector(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 5)
	if err != nil {
		return nil, fmt.Errorf("filled_sector: %w", err)
	}
	b.canvas.FilledSector(v[0], v[1], v[2], v[3], v[4])
	return c.Next(), nil
}

func (b *Bindings) ellipticalSector(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 6)
	if err != nil {
		return nil, fmt.Errorf("elliptical_sector: %w", err)
	}
	b.canvas.EllipticalSector(v[0], v[1], v[2], v[3], v[4], v[5])
	return c.Next(), nil
}

func (b *Bindings) filledEllipticalSector(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 6)
	if err != nil {
		return nil, fmt.Errorf("filled_elliptical_sector: %w", err)
	}
	b.canvas.FilledEllipticalSector(v[0], v[1], v[2], v[3], v[4], v[5])
	return c.Next(), nil
}

func (b *Bindings) annulus(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("annulus: %w", err)
	}
	b.canvas.Annulus(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) filledAnnulus(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 4)
	if err != nil {
		return nil, fmt.Errorf("filled_annulus: %w", err)
	}
	b.canvas.FilledAnnulus(v[0], v[1], v[2], v[3])
	return c.Next(), nil
}

func (b *Bindings) text(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	x, err := floatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	y, err := floatArg(args, 1)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	s, err := stringArg(args, 2)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	b.canvas.Text(x, y, s)
	return c.Next(), nil
}

// --- Pixels, pictures, saving ---

func (b *Bindings) pixelColor(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	v, err := floatArgs(c, 2)
	if err != nil {
		return nil, fmt.Errorf("pixel_color: %w", err)
	}
	clr := b.canvas.PixelColor(v[0], v[1])

	out := rt.NewTable()
	out.Set(rt.StringValue("r"), rt.IntValue(int64(clr.R)))
	out.Set(rt.StringValue("g"), rt.IntValue(int64(clr.G)))
	out.Set(rt.StringValue("b"), rt.IntValue(int64(clr.B)))
	out.Set(rt.StringValue("a"), rt.IntValue(int64(clr.A)))
	return c.PushingNext1(t.Runtime, rt.TableValue(out)), nil
}

func (b *Bindings) picture(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	path, err := stringArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("picture: %w", err)
	}

	img, ok := b.pics[path]
	if !ok {
		img, err = draw.LoadPicture(path)
		if err != nil {
			return nil, fmt.Errorf("picture: %w", err)
		}
		b.pics[path] = img
	}

	if len(args) >= 3 {
		x, err := floatArg(args, 1)
		if err != nil {
			return nil, fmt.Errorf("picture: %w", err)
		}
		y, err := floatArg(args, 2)
		if err != nil {
			return nil, fmt.Errorf("picture: %w", err)
		}
		b.canvas.Picture(img, x, y)
		return c.Next(), nil
	}
	b.canvas.PictureCentered(img)
	return c.Next(), nil
}

func (b *Bindings) save(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	path := ""
	if len(args) > 0 {
		var err error
		path, err = stringArg(args, 0)
		if err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
	}
	if err := b.canvas.Save(path); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	return c.Next(), nil
}

// --- Events ---

func (b *Bindings) hasNextKeyTyped(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.BoolValue(b.canvas.HasNextKeyTyped())), nil
}

func (b *Bindings) nextKeyTyped(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	r, err := b.canvas.NextKeyTyped()
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.StringValue(string(r))), nil
}

func (b *Bindings) mousePressed(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	return c.PushingNext1(t.Runtime, rt.BoolValue(b.canvas.MousePressed())), nil
}

func (b *Bindings) mouseX(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	x, err := b.canvas.MouseX()
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.FloatValue(x)), nil
}

func (b *Bindings) mouseY(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	y, err := b.canvas.MouseY()
	if err != nil {
		return nil, err
	}
	return c.PushingNext1(t.Runtime, rt.FloatValue(y)), nil
}

// --- Presentation ---

func (b *Bindings) show(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	args := getAllArgs(c)
	if len(args) == 0 {
		if err := b.showUntilCanceled(); err != nil {
			return nil, err
		}
		return c.Next(), nil
	}

	msec, err := floatArg(args, 0)
	if err != nil {
		return nil, fmt.Errorf("show: %w", err)
	}
	if math.IsInf(msec, 1) {
		if err := b.showUntilCanceled(); err != nil {
			return nil, err
		}
		return c.Next(), nil
	}
	if err := b.canvas.Show(time.Duration(msec * float64(time.Millisecond))); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

func (b *Bindings) showForever(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
	if err := b.showUntilCanceled(); err != nil {
		return nil, err
	}
	return c.Next(), nil
}

// showUntilCanceled keeps the canvas on screen until the window closes or
// the run context is canceled. Cancellation is what lets live reload
// interrupt a sketch parked at its final show.
func (b *Bindings) showUntilCanceled() error {
	for {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		if err := b.canvas.Show(showPollInterval); err != nil {
			return err
		}
	}
}
