package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrTerminated is returned when the window loop is terminated via context
// cancellation.
var ErrTerminated = errors.New("window terminated")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// specialKeys maps keys without an input character to the control runes
// the key stack reports for them. Iterated in order so simultaneous
// presses enqueue deterministically.
var specialKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyEnter, '\r'},
	{ebiten.KeyNumpadEnter, '\r'},
	{ebiten.KeyTab, '\t'},
	{ebiten.KeyBackspace, '\b'},
	{ebiten.KeyEscape, 0x1b},
	{ebiten.KeyDelete, 0x7f},
}

// Game implements ebiten.Game. Every tick it drains OS input into the
// event queue; every frame it blits the latest presented canvas snapshot.
type Game struct {
	config       Config
	events       *EventQueue
	errorHandler ErrorHandler
	perf         *PerfMonitor
	mu           sync.RWMutex
	present      *image.RGBA
	inputBuf     []rune
	running      bool
	ctx          context.Context
	done         chan struct{}
	closeOnce    sync.Once
}

// NewGame creates a new Game instance with the provided configuration.
func NewGame(config Config) *Game {
	return &Game{
		config:       config,
		events:       NewEventQueue(),
		errorHandler: DefaultErrorHandler,
		perf:         NewPerfMonitor(),
		done:         make(chan struct{}),
	}
}

// Events returns the input queue drained by this window.
func (g *Game) Events() *EventQueue {
	return g.events
}

// Perf returns the frame statistics monitor.
func (g *Game) Perf() *PerfMonitor {
	return g.perf
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetContext sets a context for the window loop. When the context is
// cancelled, the loop terminates gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// Present swaps in a new canvas snapshot to be blitted every frame until
// the next call. The image must match the window dimensions.
func (g *Game) Present(img *image.RGBA) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.present = img
}

// Done returns a channel closed when the window loop has exited, whether
// by the close button or by context cancellation.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Update implements ebiten.Game.Update.
// It is called every tick (typically 60 times per second).
func (g *Game) Update() error {
	g.mu.Lock()
	ctx := g.ctx
	g.mu.Unlock()

	if ctx != nil {
		select {
		case <-ctx.Done():
			return ErrTerminated
		default:
		}
	}

	g.inputBuf = ebiten.AppendInputChars(g.inputBuf[:0])
	for _, r := range g.inputBuf {
		g.events.PushKey(r)
	}
	for _, sk := range specialKeys {
		if inpututil.IsKeyJustPressed(sk.key) {
			g.events.PushKey(sk.r)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.events.PushClick(x, y)
	}

	return nil
}

// Draw implements ebiten.Game.Draw.
// It is called every frame to render the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.perf.FrameStart()
	defer g.perf.FrameEnd()

	g.mu.RLock()
	present := g.present
	g.mu.RUnlock()

	if present == nil {
		return
	}
	// Drop frames whose snapshot does not match the window, such as a
	// reloaded sketch that picked a new canvas size.
	if len(present.Pix) != 4*g.config.Width*g.config.Height {
		return
	}
	screen.WritePixels(present.Pix)
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Width, g.config.Height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	return g.config
}

// Run starts the Ebiten window loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
	g.closeOnce.Do(func() { close(g.done) })

	return err
}

// IsRunning returns whether the window loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
