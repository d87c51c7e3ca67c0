// Package main provides the entry point for the draw-sketch runner.
// It executes Lua sketches against a drawing canvas using Ebiten for
// the window and Golua for script execution, with optional live reload.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/opd-ai/go-draw/internal/profiling"
	"github.com/opd-ai/go-draw/internal/script"
	"github.com/opd-ai/go-draw/pkg/draw"
)

// Version is the current version of draw-sketch.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	sketchPath := flag.String("s", "", "Path to the Lua sketch file")
	watch := flag.Bool("watch", false, "Rerun the sketch when the file changes")
	title := flag.String("title", "", "Window title (defaults to the sketch file name)")
	width := flag.Int("width", 0, "Canvas width in pixels (sketches that size themselves must not use this)")
	height := flag.Int("height", 0, "Canvas height in pixels")
	version := flag.Bool("v", false, "Print version and exit")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	cpuProfile := flag.String("cpuprofile", "", "Write CPU profile to file")
	memProfile := flag.String("memprofile", "", "Write memory profile to file")
	flag.Parse()

	if *version {
		fmt.Printf("draw-sketch version %s\n", Version)
		return 0
	}

	// Positional form: draw-sketch sketch.lua
	if *sketchPath == "" && flag.NArg() > 0 {
		*sketchPath = flag.Arg(0)
	}
	if *sketchPath == "" {
		fmt.Fprintln(os.Stderr, "No sketch file specified.")
		fmt.Fprintln(os.Stderr, "Usage: draw-sketch [-watch] <sketch.lua>")
		return 1
	}

	if _, err := os.Stat(*sketchPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Sketch file not found: %s\n", *sketchPath)
		} else {
			fmt.Fprintf(os.Stderr, "Error accessing sketch file %s: %v\n", *sketchPath, err)
		}
		return 1
	}

	profConfig := profiling.Config{
		CPUProfilePath: *cpuProfile,
		MemProfilePath: *memProfile,
	}
	profiler := profiling.New(profConfig)

	if profConfig.Enabled() {
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	opts := draw.DefaultOptions()
	opts.Width = *width
	opts.Height = *height
	opts.Title = *title
	if opts.Title == "" {
		opts.Title = *sketchPath
	}
	if *verbose {
		opts.Logger = draw.DebugLogger()
	}

	runner := &sketchRunner{
		path:   *sketchPath,
		watch:  *watch,
		engine: script.New(script.DefaultConfig()),
	}
	defer runner.engine.Close()

	if err := draw.Run(&opts, runner.sketch); err != nil {
		fmt.Fprintf(os.Stderr, "draw-sketch: %v\n", err)
		return 1
	}
	return 0
}

// sketchRunner executes one sketch file against the canvas, rerunning it
// on file changes when watching.
type sketchRunner struct {
	path   string
	watch  bool
	engine *script.Engine

	mu     sync.Mutex
	cancel context.CancelFunc
}

// sketch is the body handed to draw.Run. Without -watch it executes the
// file once. With -watch it loops: each save of the file cancels the
// running execution, resets the canvas, and runs the new version.
func (r *sketchRunner) sketch(canvas *draw.Canvas) error {
	if !r.watch {
		return r.runOnce(context.Background(), canvas)
	}

	reload := make(chan struct{}, 1)
	watcher, err := script.NewWatcher(r.path, script.DefaultWatchDebounce,
		func() error {
			r.interrupt()
			select {
			case reload <- struct{}{}:
			default:
			}
			return nil
		},
		func(err error) {
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		},
	)
	if err != nil {
		return fmt.Errorf("watch %s: %w", r.path, err)
	}
	watcher.Start()
	defer watcher.Stop()

	for {
		// A broken sketch stays on screen while the author fixes it;
		// an interrupted one was canceled by the save that triggered
		// the reload.
		err := r.runOnce(context.Background(), canvas)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "sketch error: %v\n", err)
		}

		<-reload
		fmt.Printf("Reloading %s\n", r.path)
		canvas.Reset()
	}
}

func (r *sketchRunner) runOnce(ctx context.Context, canvas *draw.Canvas) error {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	defer func() {
		cancel()
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
	}()

	err := r.engine.RunFile(ctx, r.path, canvas)
	// Script errors cross the Lua runtime as text, so an interrupted run
	// is recognized by our own context rather than the error chain.
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// interrupt cancels the in-flight execution, if any.
func (r *sketchRunner) interrupt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}
