package draw

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-draw/internal/render"
)

// showQuantum is the polling interval Show sleeps in, so window close is
// observed promptly during long pauses.
const showQuantum = 100 * time.Millisecond

// windowActive enforces the single-window rule across all canvases.
var windowActive atomic.Bool

// Run opens a window for a canvas and executes sketch against it on a
// separate goroutine while the window loop runs. It must be called from
// the main goroutine and blocks until the sketch returns or the window is
// closed.
//
// When the sketch returns, the window is torn down and Run returns the
// sketch's error. When the user closes the window first, the sketch's
// pending Show or ShowForever call returns ErrWindowClosed and the
// process exits with status 0; setting Options.OnClose replaces the exit
// and makes Run wait for the sketch and return its error.
func Run(opts *Options, sketch func(*Canvas) error) error {
	o := opts.normalized()
	if err := o.Validate(); err != nil {
		return err
	}
	if !windowActive.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: another window is already running", ErrAlreadyInitialized)
	}
	defer windowActive.Store(false)

	canvas := NewCanvas(&o)
	canvas.mu.Lock()
	canvas.ensureSurface()
	width, height := canvas.surface.Size()
	canvas.mu.Unlock()

	cfg := render.Config{Width: width, Height: height, Title: o.Title}
	if err := cfg.Validate(); err != nil {
		return err
	}
	game := render.NewGame(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	game.SetContext(ctx)

	canvas.mu.Lock()
	canvas.game = game
	game.Present(canvas.surface.Snapshot())
	canvas.mu.Unlock()

	o.Logger.Debug("window starting", "width", width, "height", height, "title", o.Title)

	sketchErr := make(chan error, 1)
	go func() {
		sketchErr <- sketch(canvas)
		// Stop the window loop once the sketch is done.
		cancel()
	}()

	loopErr := game.Run()
	if loopErr != nil && !errors.Is(loopErr, render.ErrTerminated) {
		return fmt.Errorf("window loop: %w", loopErr)
	}

	fps := game.Perf().FPS()
	frames := game.Perf().FrameCount()
	o.Logger.Debug("window stopped", "frames", frames, "fps", fps)

	// A nil loop error means the close button ended the loop rather than
	// the sketch finishing.
	if loopErr == nil {
		if o.OnClose == nil {
			os.Exit(0)
		}
		o.OnClose()
	}

	err := <-sketchErr
	if errors.Is(err, ErrWindowClosed) {
		return nil
	}
	return err
}

// presentFrame snapshots the surface into the window's present buffer.
func (c *Canvas) presentFrame() (*render.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game == nil {
		return nil, ErrNoWindow
	}
	select {
	case <-c.game.Done():
		return nil, ErrWindowClosed
	default:
	}
	c.ensureSurface()
	c.game.Present(c.surface.Snapshot())
	return c.game, nil
}

// Show presents the current canvas contents in the window and pauses the
// sketch for d. The pause is chunked so that closing the window
// interrupts it, in which case Show fails with ErrWindowClosed. Durations
// shorter than the polling quantum sleep uninterrupted once. A headless
// canvas fails with ErrNoWindow.
func (c *Canvas) Show(d time.Duration) error {
	game, err := c.presentFrame()
	if err != nil {
		return err
	}

	if d < showQuantum {
		select {
		case <-time.After(d):
			return nil
		case <-game.Done():
			return ErrWindowClosed
		}
	}

	for remaining := d; remaining > 0; remaining -= showQuantum {
		chunk := showQuantum
		if remaining < chunk {
			chunk = remaining
		}
		select {
		case <-time.After(chunk):
		case <-game.Done():
			return ErrWindowClosed
		}
	}
	return nil
}

// ShowForever presents the current canvas contents and blocks until the
// window is closed, then fails with ErrWindowClosed. Sketches call it
// last to keep the finished drawing on screen. A headless canvas fails
// with ErrNoWindow.
func (c *Canvas) ShowForever() error {
	game, err := c.presentFrame()
	if err != nil {
		return err
	}
	<-game.Done()
	return ErrWindowClosed
}
