package dialog

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
)

// fakeHelper reroutes the child process to this test binary, where
// TestHelperProcess plays the dialog helper and prints a scripted reply.
func fakeHelper(t *testing.T, calls *[][]string, mu *sync.Mutex) *ChildProcess {
	t.Helper()
	p := NewChildProcess(nil)
	p.lookup = func() (string, error) { return os.Args[0], nil }
	p.command = func(name string, args ...string) *exec.Cmd {
		mu.Lock()
		*calls = append(*calls, args)
		mu.Unlock()
		cmdArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.Command(name, cmdArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
	return p
}

// TestHelperProcess is not a real test: it is the scripted dialog helper
// run as a child process by the tests in this file.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "no prompt argument")
		os.Exit(2)
	}

	switch args[0] {
	case OpGetFileName:
		// Trailing newline mimics the real helper's stdout.
		fmt.Println("picture.png")
		os.Exit(0)
	case OpConfirmSave, OpReportError:
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown prompt %q\n", args[0])
		os.Exit(2)
	}
}

func TestAskSaveName(t *testing.T) {
	var calls [][]string
	var mu sync.Mutex
	p := fakeHelper(t, &calls, &mu)

	name, err := p.AskSaveName()
	if err != nil {
		t.Fatalf("AskSaveName failed: %v", err)
	}
	if name != "picture.png" {
		t.Errorf("AskSaveName = %q, want %q (output must be trimmed)", name, "picture.png")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 || calls[0][0] != OpGetFileName {
		t.Errorf("helper invoked with %v, want [[%s]]", calls, OpGetFileName)
	}
}

func TestAskSaveNameLookupFailure(t *testing.T) {
	p := NewChildProcess(nil)
	p.lookup = func() (string, error) { return "", errors.New("not found") }

	_, err := p.AskSaveName()
	if err == nil {
		t.Fatal("expected lookup error, got nil")
	}
	if !strings.Contains(err.Error(), "locate dialog helper") {
		t.Errorf("error %v does not mention helper lookup", err)
	}
}

func TestNotifySavedInvokesConfirm(t *testing.T) {
	var calls [][]string
	var mu sync.Mutex
	p := fakeHelper(t, &calls, &mu)

	p.NotifySaved("out.png")

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 || calls[0][0] != OpConfirmSave {
		t.Errorf("helper invoked with %v, want [[%s]]", calls, OpConfirmSave)
	}
}

func TestReportErrorPassesMessage(t *testing.T) {
	var calls [][]string
	var mu sync.Mutex
	p := fakeHelper(t, &calls, &mu)

	p.ReportError("disk full")

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("helper invoked %d times, want 1", len(calls))
	}
	if calls[0][0] != OpReportError || calls[0][1] != "disk full" {
		t.Errorf("helper invoked with %v, want [%s disk full]", calls[0], OpReportError)
	}
}

func TestNotifyToleratesMissingHelper(t *testing.T) {
	p := NewChildProcess(nil)
	p.lookup = func() (string, error) { return "", errors.New("not found") }

	// Notifications are fire-and-forget; a missing helper must not panic.
	p.NotifySaved("out.png")
	p.ReportError("boom")
}

func TestFindHelperEnvOverride(t *testing.T) {
	t.Setenv(HelperEnv, "/custom/path/draw-dialog")

	path, err := findHelper()
	if err != nil {
		t.Fatalf("findHelper failed: %v", err)
	}
	if path != "/custom/path/draw-dialog" {
		t.Errorf("findHelper = %q, want the env override", path)
	}
}

func TestFindHelperNotFound(t *testing.T) {
	t.Setenv(HelperEnv, "")
	t.Setenv("PATH", t.TempDir())

	if _, err := findHelper(); err == nil {
		t.Skip("a draw-dialog binary sits beside the test executable")
	}
}
