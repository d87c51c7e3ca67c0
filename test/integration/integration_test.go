//go:build integration

// Package integration provides end-to-end integration tests for go-draw.
// They drive complete Lua sketches through the script engine against a
// real rasterizing canvas and verify the rendered pixels, along with the
// save/load and live-reload pipelines the sketch runner is built from.
//
// Note: windowed presentation is excluded because ebiten requires a
// display environment that is not available in CI. Everything up to the
// present call runs headlessly.
package integration

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/opd-ai/go-draw/internal/script"
	"github.com/opd-ai/go-draw/pkg/draw"
)

// getTestSketchesDir returns the path to the test sketches directory.
// It calls t.Fatal if runtime.Caller fails.
func getTestSketchesDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed to get current file path")
	}
	return filepath.Join(filepath.Dir(file), "..", "sketches")
}

func newEngine(t *testing.T) *script.Engine {
	t.Helper()
	engine := script.New(script.DefaultConfig())
	t.Cleanup(func() { engine.Close() })
	return engine
}

func newCanvas() *draw.Canvas {
	return draw.NewCanvas(&draw.Options{Logger: draw.NopLogger()})
}

// TestSketchRenderPipeline runs complete sketch files through the engine
// and verifies rendered pixels. Probe points sit well inside their shapes
// so antialiasing at the boundaries cannot blend them.
func TestSketchRenderPipeline(t *testing.T) {
	type probe struct {
		x, y float64
		want color.RGBA
	}
	tests := []struct {
		file   string
		width  float64
		height float64
		probes []probe
	}{
		{
			file:  "basic.lua",
			width: 96, height: 96,
			probes: []probe{
				{0.35, 0.40, draw.BookBlue},  // house wall
				{0.50, 0.60, draw.DarkRed},   // roof interior
				{0.12, 0.88, draw.Orange},    // sun center
				{0.05, 0.50, draw.LightGray}, // background
			},
		},
		{
			file:  "checkerboard.lua",
			width: 64, height: 64,
			probes: []probe{
				{0.5, 0.5, draw.Black}, // cell (0,0)
				{1.5, 0.5, draw.Red},   // cell (1,0)
				{7.5, 7.5, draw.Black}, // cell (7,7)
			},
		},
		{
			file:  "target.lua",
			width: 128, height: 128,
			probes: []probe{
				{0.50, 0.50, draw.Red},   // bull
				{0.72, 0.50, draw.White}, // inner ring
				{0.50, 0.90, draw.Blue},  // outer ring
				{0.02, 0.02, draw.White}, // background corner
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			engine := newEngine(t)
			canvas := newCanvas()

			path := filepath.Join(getTestSketchesDir(t), tc.file)
			if err := engine.RunFile(context.Background(), path, canvas); err != nil {
				t.Fatalf("RunFile failed: %v", err)
			}

			if w := canvas.CanvasWidth(); w != tc.width {
				t.Errorf("canvas width = %v, want %v", w, tc.width)
			}
			if h := canvas.CanvasHeight(); h != tc.height {
				t.Errorf("canvas height = %v, want %v", h, tc.height)
			}
			for _, p := range tc.probes {
				if got := canvas.PixelColor(p.x, p.y); got != p.want {
					t.Errorf("pixel at (%v, %v) = %v, want %v", p.x, p.y, got, p.want)
				}
			}
		})
	}
}

// TestSketchErrorLeavesCanvas verifies that a failing sketch reports the
// Lua error and that drawing done before the failure stays on the canvas,
// which is what the watch loop shows while the author fixes the file.
func TestSketchErrorLeavesCanvas(t *testing.T) {
	engine := newEngine(t)
	canvas := newCanvas()

	path := filepath.Join(getTestSketchesDir(t), "broken.lua")
	err := engine.RunFile(context.Background(), path, canvas)
	if err == nil {
		t.Fatal("expected sketch error, got nil")
	}
	if !strings.Contains(err.Error(), "wheels came off") {
		t.Errorf("expected error to carry the Lua message, got %v", err)
	}

	if got := canvas.PixelColor(0.5, 0.5); got != draw.Black {
		t.Errorf("expected black circle at center, got %v", got)
	}
	if got := canvas.PixelColor(0.1, 0.9); got != draw.Yellow {
		t.Errorf("expected yellow background in corner, got %v", got)
	}
}

// TestSaveLoadRoundTrip saves a canvas from Lua and reads it back through
// the Go picture API onto a second canvas.
func TestSaveLoadRoundTrip(t *testing.T) {
	engine := newEngine(t)
	path := filepath.Join(t.TempDir(), "tile.png")

	source := fmt.Sprintf(`
		draw.set_canvas_size(16, 16)
		draw.clear("book_red")
		draw.save(%q)
	`, path)
	if err := engine.Run(context.Background(), "tile.lua", source, newCanvas()); err != nil {
		t.Fatalf("saving sketch failed: %v", err)
	}

	pic, err := draw.LoadPicture(path)
	if err != nil {
		t.Fatalf("LoadPicture failed: %v", err)
	}
	if pic.Width() != 16 || pic.Height() != 16 {
		t.Errorf("loaded picture is %dx%d, want 16x16", pic.Width(), pic.Height())
	}

	canvas := newCanvas()
	if err := canvas.SetCanvasSize(64, 64); err != nil {
		t.Fatalf("SetCanvasSize failed: %v", err)
	}
	canvas.Clear(draw.White)
	canvas.PictureCentered(pic)

	if got := canvas.PixelColor(0.5, 0.5); got != draw.BookRed {
		t.Errorf("expected book red tile at center, got %v", got)
	}
	if got := canvas.PixelColor(0.1, 0.1); got != draw.White {
		t.Errorf("expected white outside the tile, got %v", got)
	}
}

// TestLiveReloadPipeline wires together the pieces the -watch flag is
// built from: a watcher on the sketch file triggers a canvas reset and
// rerun, and the rerun may pick a new canvas size because the reset
// re-arms sizing.
func TestLiveReloadPipeline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketch.lua")

	v1 := "draw.set_canvas_size(16, 16)\ndraw.clear(\"red\")\n"
	if err := os.WriteFile(path, []byte(v1), 0o644); err != nil {
		t.Fatalf("failed to write sketch: %v", err)
	}

	engine := newEngine(t)
	canvas := newCanvas()

	if err := engine.RunFile(context.Background(), path, canvas); err != nil {
		t.Fatalf("initial run failed: %v", err)
	}
	if got := canvas.PixelColor(0.5, 0.5); got != draw.Red {
		t.Fatalf("initial canvas = %v, want red", got)
	}

	reran := make(chan error, 4)
	watcher, err := script.NewWatcher(path, 50*time.Millisecond,
		func() error {
			canvas.Reset()
			reran <- engine.RunFile(context.Background(), path, canvas)
			return nil
		},
		nil,
	)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	watcher.Start()
	defer watcher.Stop()

	// Give the watcher time to start before the save.
	time.Sleep(100 * time.Millisecond)

	v2 := "draw.set_canvas_size(32, 32)\ndraw.clear(\"blue\")\n"
	if err := os.WriteFile(path, []byte(v2), 0o644); err != nil {
		t.Fatalf("failed to rewrite sketch: %v", err)
	}

	select {
	case err := <-reran:
		if err != nil {
			t.Fatalf("rerun failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the reload to rerun the sketch")
	}

	if w := canvas.CanvasWidth(); w != 32 {
		t.Errorf("canvas width after reload = %v, want 32", w)
	}
	if got := canvas.PixelColor(0.5, 0.5); got != draw.Blue {
		t.Errorf("canvas after reload = %v, want blue", got)
	}
}
