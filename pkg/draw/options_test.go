package draw

import (
	"errors"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Title != DefaultWindowTitle {
		t.Errorf("default title %q, want %q", o.Title, DefaultWindowTitle)
	}
	if o.Width != 0 || o.Height != 0 {
		t.Errorf("default size %dx%d, want deferred allocation", o.Width, o.Height)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero value defers sizing", Options{}, false},
		{"explicit size", Options{Width: 640, Height: 480}, false},
		{"negative width", Options{Width: -1, Height: 100}, true},
		{"negative height", Options{Width: 100, Height: -1}, true},
		{"width without height", Options{Width: 100}, true},
		{"height without width", Options{Height: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNormalizedFillsDefaults(t *testing.T) {
	var nilOpts *Options
	o := nilOpts.normalized()
	if o.Title != DefaultWindowTitle {
		t.Errorf("normalized nil title %q, want %q", o.Title, DefaultWindowTitle)
	}
	if o.Logger == nil {
		t.Error("normalized nil options left Logger unset")
	}

	o = (&Options{Title: "custom"}).normalized()
	if o.Title != "custom" {
		t.Errorf("normalized title %q, want custom", o.Title)
	}
}
