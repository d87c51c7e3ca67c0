package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-draw/pkg/draw"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine := New(DefaultConfig())
	t.Cleanup(func() { engine.Close() })
	return engine
}

func newTestCanvas() *draw.Canvas {
	return draw.NewCanvas(&draw.Options{Logger: draw.NopLogger()})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.CPULimit != 0 {
		t.Errorf("expected CPULimit 0, got %d", config.CPULimit)
	}

	if config.MemoryLimit != 256*1024*1024 {
		t.Errorf("expected MemoryLimit %d, got %d", 256*1024*1024, config.MemoryLimit)
	}

	if config.Stdout != os.Stdout {
		t.Error("expected Stdout to be os.Stdout")
	}
}

func TestRunExecutesSketch(t *testing.T) {
	engine := newTestEngine(t)
	canvas := newTestCanvas()

	source := `
		draw.set_canvas_size(32, 32)
		draw.clear_rgb(255, 0, 0)
	`
	if err := engine.Run(context.Background(), "test.lua", source, canvas); err != nil {
		t.Fatalf("failed to run sketch: %v", err)
	}

	got := canvas.PixelColor(0.5, 0.5)
	if got != draw.Red {
		t.Errorf("expected red canvas after clear_rgb, got %v", got)
	}
}

func TestRunCapturesPrintOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	config := DefaultConfig()
	config.Stdout = buf

	engine := New(config)
	defer engine.Close()

	err := engine.Run(context.Background(), "test.lua", `print("hello from lua")`, newTestCanvas())
	if err != nil {
		t.Fatalf("failed to run sketch: %v", err)
	}

	if buf.String() != "hello from lua\n" {
		t.Errorf("expected 'hello from lua\\n', got %q", buf.String())
	}
}

func TestRunCompileError(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.Run(context.Background(), "bad.lua", `this is not lua`, newTestCanvas())
	if err == nil {
		t.Fatal("expected compile error, got nil")
	}
	if !strings.Contains(err.Error(), "compile sketch bad.lua") {
		t.Errorf("expected compile error to name the sketch, got %v", err)
	}
}

func TestRunRuntimeError(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.Run(context.Background(), "boom.lua", `error("boom")`, newTestCanvas())
	if err == nil {
		t.Fatal("expected runtime error, got nil")
	}
	if !strings.Contains(err.Error(), "sketch boom.lua") {
		t.Errorf("expected error to name the sketch, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected error to carry the Lua message, got %v", err)
	}
}

func TestRunCanceledContext(t *testing.T) {
	engine := newTestEngine(t)
	canvas := newTestCanvas()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := engine.Run(ctx, "test.lua", `draw.set_canvas_size(32, 32)`, canvas)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSandboxRemovesFileAccess(t *testing.T) {
	engine := newTestEngine(t)

	// Each line errors if a hole in the sandbox is found, so a nil
	// result means the environment is as restricted as expected.
	source := `
		if io ~= nil then error("io is available") end
		if dofile ~= nil then error("dofile is available") end
		if loadfile ~= nil then error("loadfile is available") end
		if os == nil then error("os is missing entirely") end
		if os.execute ~= nil then error("os.execute is available") end
		if os.remove ~= nil then error("os.remove is available") end
		if os.getenv ~= nil then error("os.getenv is available") end
		if os.time == nil then error("os.time is missing") end
		if os.clock == nil then error("os.clock is missing") end
		if os.date == nil then error("os.date is missing") end
	`
	if err := engine.Run(context.Background(), "sandbox.lua", source, newTestCanvas()); err != nil {
		t.Errorf("sandbox check failed: %v", err)
	}
}

func TestRunFileMissing(t *testing.T) {
	engine := newTestEngine(t)

	err := engine.RunFile(context.Background(), "/nonexistent/sketch.lua", newTestCanvas())
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "read sketch") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestRunFile(t *testing.T) {
	engine := newTestEngine(t)
	canvas := newTestCanvas()

	path := filepath.Join(t.TempDir(), "sketch.lua")
	source := "draw.set_canvas_size(16, 16)\ndraw.clear_rgb(0, 0, 255)\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write sketch: %v", err)
	}

	if err := engine.RunFile(context.Background(), path, canvas); err != nil {
		t.Fatalf("failed to run sketch file: %v", err)
	}
	if got := canvas.PixelColor(0.5, 0.5); got != draw.Blue {
		t.Errorf("expected blue canvas, got %v", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	engine := New(DefaultConfig())
	if err := engine.Close(); err != nil {
		t.Errorf("first Close returned error: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Errorf("second Close returned error: %v", err)
	}
}

func TestRunReusesRuntimeAcrossSketches(t *testing.T) {
	engine := newTestEngine(t)

	first := newTestCanvas()
	if err := engine.Run(context.Background(), "first.lua", `draw.set_canvas_size(8, 8)`, first); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// A later run rebinds the draw table to a fresh canvas.
	second := newTestCanvas()
	source := `
		draw.set_canvas_size(16, 16)
		if draw.canvas_width() ~= 16 then
			error("draw table still bound to the previous canvas")
		end
	`
	if err := engine.Run(context.Background(), "second.lua", source, second); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
}
