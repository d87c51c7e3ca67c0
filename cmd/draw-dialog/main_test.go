package main

import "testing"

// The prompt operations themselves need a display; only argument
// handling is covered here.

func TestRunNoArguments(t *testing.T) {
	if got := run(nil); got != 2 {
		t.Errorf("run() with no arguments = %d, want 2", got)
	}
}

func TestRunUnknownPrompt(t *testing.T) {
	if got := run([]string{"openFilePicker"}); got != 2 {
		t.Errorf("run() with unknown prompt = %d, want 2", got)
	}
}
