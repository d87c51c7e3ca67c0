package draw

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opd-ai/go-draw/internal/dialog"
)

// Prompter is the save-dialog capability. AskSaveName blocks until a file
// name is chosen or the dialog is canceled, in which case it returns an
// empty name. NotifySaved and ReportError are fire-and-forget
// notifications to the user. The default implementation spawns the
// draw-dialog helper binary for each call; Options.Prompter replaces it.
type Prompter interface {
	AskSaveName() (string, error)
	NotifySaved(path string)
	ReportError(msg string)
}

// Save writes the canvas to an image file chosen by extension: ".png"
// encodes PNG, ".jpg" and ".jpeg" encode JPEG, anything else fails with
// ErrUnsupportedFormat. An empty path opens the save dialog and reports
// the outcome through it; canceling the dialog returns nil.
func (c *Canvas) Save(path string) error {
	if path == "" {
		return c.saveWithDialog()
	}
	return c.saveTo(path)
}

func (c *Canvas) saveTo(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSurface()

	var encode func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = c.surface.EncodePNG
	case ".jpg", ".jpeg":
		encode = c.surface.EncodeJPEG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	c.log.Debug("canvas saved", "path", path)
	return nil
}

func (c *Canvas) saveWithDialog() error {
	prompter := c.prompterOrDefault()

	name, err := prompter.AskSaveName()
	if err != nil {
		return fmt.Errorf("ask save name: %w", err)
	}
	if name == "" {
		// Dialog canceled.
		return nil
	}
	if !strings.HasSuffix(name, ".jpg") && !strings.HasSuffix(name, ".png") {
		prompter.ReportError(`File name must end with ".jpg" or ".png".`)
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	if err := c.saveTo(name); err != nil {
		prompter.ReportError(err.Error())
		return err
	}
	prompter.NotifySaved(name)
	return nil
}

// prompterOrDefault lazily installs the child-process prompter.
func (c *Canvas) prompterOrDefault() Prompter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prompter == nil {
		c.prompter = dialog.NewChildProcess(c.log)
	}
	return c.prompter
}
