// Package dialog implements the save-file prompts as child processes.
// Each prompt is a short-lived helper binary with its own window, spawned
// by the library, so the dialog never competes with the sketch window's
// event loop.
package dialog

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Operation sentinels the helper binary dispatches on as its first
// argument.
const (
	OpGetFileName = "getFileName"
	OpConfirmSave = "confirmFileSave"
	OpReportError = "reportFileSaveError"
)

// HelperEnv overrides helper discovery with an explicit binary path.
const HelperEnv = "DRAW_DIALOG_HELPER"

// helperName is the binary looked up beside the executable and on PATH.
const helperName = "draw-dialog"

// Logger matches the library's logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// ChildProcess prompts the user by spawning the draw-dialog helper.
// AskSaveName blocks on the child and reads the chosen name from its
// stdout; the notification prompts are fire and forget.
type ChildProcess struct {
	log     Logger
	lookup  func() (string, error)
	command func(name string, args ...string) *exec.Cmd
}

// NewChildProcess returns a prompter using the default helper discovery.
// A nil log disables logging.
func NewChildProcess(log Logger) *ChildProcess {
	if log == nil {
		log = nopLogger{}
	}
	return &ChildProcess{
		log:     log,
		lookup:  findHelper,
		command: exec.Command,
	}
}

// findHelper locates the helper binary: the HelperEnv override first,
// then beside the current executable, then PATH.
func findHelper() (string, error) {
	if p := os.Getenv(HelperEnv); p != "" {
		return p, nil
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), helperName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	if p, err := exec.LookPath(helperName); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("helper binary %q not found (set %s to override)", helperName, HelperEnv)
}

// AskSaveName opens the file-name prompt and blocks until it closes. A
// canceled prompt yields an empty name and a nil error.
func (p *ChildProcess) AskSaveName() (string, error) {
	helper, err := p.lookup()
	if err != nil {
		return "", fmt.Errorf("locate dialog helper: %w", err)
	}

	cmd := p.command(helper, OpGetFileName)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("run dialog helper: %w", err)
	}

	name := strings.TrimSpace(string(out))
	p.log.Debug("save dialog closed", "name", name)
	return name, nil
}

// NotifySaved opens the saved-confirmation prompt without waiting for it.
func (p *ChildProcess) NotifySaved(path string) {
	p.log.Debug("confirming save", "path", path)
	p.notify(OpConfirmSave)
}

// ReportError opens an error prompt showing msg without waiting for it.
func (p *ChildProcess) ReportError(msg string) {
	p.notify(OpReportError, msg)
}

func (p *ChildProcess) notify(args ...string) {
	helper, err := p.lookup()
	if err != nil {
		p.log.Warn("dialog helper unavailable", "error", err)
		return
	}

	cmd := p.command(helper, args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		p.log.Warn("dialog helper failed to start", "error", err)
		return
	}
	go func() {
		// Reap the child so it does not linger as a zombie.
		_ = cmd.Wait()
	}()
}
