package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-draw/internal/script"
	"github.com/opd-ai/go-draw/pkg/draw"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func writeSketch(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketch.lua")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write sketch: %v", err)
	}
	return path
}

func newRunner(t *testing.T, path string) *sketchRunner {
	t.Helper()
	r := &sketchRunner{
		path:   path,
		engine: script.New(script.DefaultConfig()),
	}
	t.Cleanup(func() { r.engine.Close() })
	return r
}

func TestRunOnceExecutesSketch(t *testing.T) {
	path := writeSketch(t, "draw.set_canvas_size(16, 16)\ndraw.clear_rgb(255, 0, 0)\n")
	r := newRunner(t, path)
	canvas := draw.NewCanvas(&draw.Options{Logger: draw.NopLogger()})

	if err := r.runOnce(context.Background(), canvas); err != nil {
		t.Fatalf("runOnce failed: %v", err)
	}
	if got := canvas.PixelColor(0.5, 0.5); got != draw.Red {
		t.Errorf("expected red canvas, got %v", got)
	}
}

func TestRunOnceReportsSketchError(t *testing.T) {
	path := writeSketch(t, `error("deliberate failure")`)
	r := newRunner(t, path)
	canvas := draw.NewCanvas(&draw.Options{Logger: draw.NopLogger()})

	err := r.runOnce(context.Background(), canvas)
	if err == nil {
		t.Fatal("expected sketch error, got nil")
	}
	if !strings.Contains(err.Error(), "deliberate failure") {
		t.Errorf("expected error to carry the Lua message, got %v", err)
	}
}

func TestRunOnceCanceled(t *testing.T) {
	path := writeSketch(t, "draw.point(0.5, 0.5)\n")
	r := newRunner(t, path)
	canvas := draw.NewCanvas(&draw.Options{Logger: draw.NopLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.runOnce(ctx, canvas); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInterruptWithoutRun(t *testing.T) {
	r := newRunner(t, "unused.lua")
	// Must not panic when nothing is running.
	r.interrupt()
}

func TestSketchFileNotFound(t *testing.T) {
	_, err := os.Stat("/nonexistent/sketch.lua")
	if !os.IsNotExist(err) {
		t.Error("Expected IsNotExist error for non-existent file")
	}
}
