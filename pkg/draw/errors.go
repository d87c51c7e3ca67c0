package draw

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by canvas operations. Callers match them with
// errors.Is; returned errors wrap these with call-site detail.
var (
	// ErrAlreadyInitialized is returned when the canvas surface is resized
	// after it has been allocated.
	ErrAlreadyInitialized = errors.New("canvas already initialized")

	// ErrInvalidArgument is returned for out-of-domain arguments: scale
	// ranges with min >= max, non-positive canvas dimensions, negative pen
	// radii, or mismatched polygon coordinate slices.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoClickYet is returned by MouseX and MouseY before any click has
	// been recorded.
	ErrNoClickYet = errors.New("no mouse click recorded yet")

	// ErrNoPendingKeys is returned by NextKeyTyped when the key queue is
	// empty.
	ErrNoPendingKeys = errors.New("no keys pending")

	// ErrNoWindow is returned by present operations on a headless canvas.
	ErrNoWindow = errors.New("canvas has no window")

	// ErrWindowClosed is returned by present operations after the window
	// has been closed.
	ErrWindowClosed = errors.New("window closed")

	// ErrUnsupportedFormat is returned by Save for file extensions the
	// encoder does not handle.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// newInvalidArgument wraps ErrInvalidArgument with call-site detail.
func newInvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// newAlreadyInitialized wraps ErrAlreadyInitialized with the current
// surface dimensions.
func newAlreadyInitialized(width, height int) error {
	return fmt.Errorf("%w: surface is %dx%d", ErrAlreadyInitialized, width, height)
}
