// Package render provides the Ebiten-based window and input loop for go-draw.
package render

import (
	"fmt"
)

// Config holds the window configuration options.
type Config struct {
	// Width is the window width in pixels. It matches the canvas surface
	// width; the window is not resizable.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:  512,
		Height: 512,
		Title:  "go-draw",
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width or Height are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	return nil
}
