package draw

// Default canvas parameters installed when options leave them unset.
const (
	// DefaultCanvasSize is the width and height, in pixels, of a canvas
	// whose size was never configured.
	DefaultCanvasSize = 512

	// DefaultWindowTitle is used when Options.Title is empty.
	DefaultWindowTitle = "go-draw"
)

// Options configures a Canvas and, for windowed use, its window.
// A nil *Options everywhere means DefaultOptions().
type Options struct {
	// Width and Height set the canvas size in pixels. Zero for both defers
	// allocation to the first drawing call, which installs DefaultCanvasSize;
	// setting them allocates the surface immediately, after which
	// SetCanvasSize fails with ErrAlreadyInitialized.
	Width  int
	Height int

	// Title sets the window title. Empty means DefaultWindowTitle.
	Title string

	// Logger receives debug/info messages. Nil means DefaultLogger().
	Logger Logger

	// Prompter overrides the save-dialog capability. Nil means the
	// child-process implementation that spawns the draw-dialog helper.
	Prompter Prompter

	// OnClose is invoked when the window is closed by the user. Nil keeps
	// the historical behavior: the process exits with status 0. Embedders
	// and tests set a handler to observe shutdown instead.
	OnClose func()
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Title: DefaultWindowTitle,
	}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.Width < 0 {
		return newInvalidArgument("width must be non-negative, got %d", o.Width)
	}
	if o.Height < 0 {
		return newInvalidArgument("height must be non-negative, got %d", o.Height)
	}
	if (o.Width == 0) != (o.Height == 0) {
		return newInvalidArgument("width and height must be set together, got %dx%d", o.Width, o.Height)
	}
	return nil
}

// normalized returns a copy with nil and zero fields replaced by defaults.
func (o *Options) normalized() Options {
	out := DefaultOptions()
	if o != nil {
		out = *o
	}
	if out.Title == "" {
		out.Title = DefaultWindowTitle
	}
	if out.Logger == nil {
		out.Logger = DefaultLogger()
	}
	return out
}
