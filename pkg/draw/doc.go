// Package draw provides an educational 2D drawing canvas: shape primitives
// in a caller-defined coordinate system, rendered onto an offscreen surface
// that can be presented in a window, saved to an image file, and driven by
// simple keyboard and mouse polling.
//
// # Basic Usage
//
// A windowed program hands a sketch function to [Run]:
//
//	err := draw.Run(nil, func(c *draw.Canvas) error {
//		c.SetPenColor(draw.Blue)
//		c.FilledCircle(0.5, 0.5, 0.25)
//		return c.ShowForever()
//	})
//
// The sketch runs on its own goroutine while the window loop owns the
// calling goroutine. Every drawing call renders into the offscreen surface;
// nothing appears in the window until [Canvas.Show] or [Canvas.ShowForever]
// presents it.
//
// # Coordinate System
//
// Drawing coordinates are user-space floating-point values, by default
// spanning 0.0 to 1.0 on both axes with Y growing upward. [Canvas.SetXScale],
// [Canvas.SetYScale], and [Canvas.SetScale] reconfigure the mapping. Pen
// radius and font size are pixel quantities, not user-space ones.
//
// # Headless Mode
//
// [NewCanvas] builds a canvas without a window. All drawing, pixel-read,
// and save operations work headlessly; only the present calls require a
// window. This is the mode tests use:
//
//	c := draw.NewCanvas(nil)
//	c.FilledSquare(0.5, 0.5, 0.3)
//	err := c.Save("out.png")
//
// # Input Polling
//
// Typed keys queue most-recent-first and are drained with
// [Canvas.HasNextKeyTyped] and [Canvas.NextKeyTyped]. Mouse clicks are
// edge-triggered: [Canvas.MousePressed] reports each click exactly once,
// and [Canvas.MouseX]/[Canvas.MouseY] return the last click position in
// user coordinates.
//
// # Saving
//
// [Canvas.Save] encodes the offscreen surface as PNG or JPEG based on the
// file extension. An empty path opens a native save dialog, which runs in
// a child process because dialog toolkits and the rendering loop do not
// share a process safely.
package draw
