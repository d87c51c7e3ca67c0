// Package script runs Lua sketches against a drawing canvas. Sketches
// call the canvas through a global draw table whose functions mirror the
// educational drawing API with snake_case names.
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-draw/pkg/draw"
)

// Config contains execution options for the Lua runtime.
type Config struct {
	// CPULimit is the CPU instruction limit for one sketch execution.
	// 0 means unlimited. Sketches animate in open-ended loops, so the
	// default leaves this off.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes Lua may allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives Lua print output. Nil means os.Stdout.
	Stdout io.Writer
}

// DefaultConfig returns a Config with a 256 MB memory cap and no
// instruction limit.
func DefaultConfig() Config {
	return Config{
		MemoryLimit: 256 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// Engine wraps a Golua runtime prepared for sketch execution: standard
// libraries loaded, file and process access stripped from the sketch
// environment.
type Engine struct {
	config  Config
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// osAllowed lists the os library functions kept in the sketch
// environment. Everything else, including execute, remove and exit, is
// removed along with the whole io library.
var osAllowed = []string{"time", "clock", "date", "difftime"}

// New creates an Engine ready to run sketches.
func New(config Config) *Engine {
	stdout := config.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	e := &Engine{
		config:  config,
		runtime: runtime,
		cleanup: cleanup,
	}
	e.restrictEnvironment()
	return e
}

// restrictEnvironment removes file and process access from the globals.
func (e *Engine) restrictEnvironment() {
	env := e.runtime.GlobalEnv()
	env.Set(rt.StringValue("io"), rt.NilValue)
	env.Set(rt.StringValue("dofile"), rt.NilValue)
	env.Set(rt.StringValue("loadfile"), rt.NilValue)

	osVal := env.Get(rt.StringValue("os"))
	osTable, ok := osVal.TryTable()
	if !ok {
		return
	}
	reduced := rt.NewTable()
	for _, name := range osAllowed {
		key := rt.StringValue(name)
		reduced.Set(key, osTable.Get(key))
	}
	env.Set(rt.StringValue("os"), rt.TableValue(reduced))
}

// Run compiles and executes one sketch against canvas. The draw table the
// sketch sees is rebound to canvas and ctx for this run; bindings
// observe ctx so a cancellation interrupts a sketch blocked in show.
// Execution errors carry the Lua error with its position information.
func (e *Engine) Run(ctx context.Context, name, source string, canvas *draw.Canvas) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	b := newBindings(ctx, canvas)
	b.register(e.runtime)

	closure, err := e.runtime.CompileAndLoadLuaChunk(
		name,
		[]byte(source),
		rt.TableValue(e.runtime.GlobalEnv()),
	)
	if err != nil {
		return fmt.Errorf("compile sketch %s: %w", name, err)
	}

	e.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    e.config.CPULimit,
			Memory: e.config.MemoryLimit,
		},
	})
	defer e.runtime.PopContext()

	if _, err := rt.Call1(e.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return fmt.Errorf("sketch %s: %w", name, err)
	}
	return nil
}

// RunFile reads and executes a sketch file.
func (e *Engine) RunFile(ctx context.Context, path string, canvas *draw.Canvas) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sketch %s: %w", path, err)
	}
	return e.Run(ctx, path, string(source), canvas)
}

// Close releases the runtime's resources. The engine must not be used
// afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	return nil
}
