// Package main implements the save-dialog helper spawned by the drawing
// library. Each invocation shows a single prompt window, selected by the
// first argument, and exits: getFileName writes the chosen file name to
// stdout, confirmFileSave and reportFileSaveError show a message.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/opd-ai/go-draw/internal/dialog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage: draw-dialog %s|%s|%s [message]\n",
			dialog.OpGetFileName, dialog.OpConfirmSave, dialog.OpReportError)
		return 2
	}

	switch args[0] {
	case dialog.OpGetFileName:
		name, err := dialog.PromptFileName()
		if err != nil {
			fmt.Fprintf(os.Stderr, "draw-dialog: %v\n", err)
			return 1
		}
		fmt.Println(name)
		return 0

	case dialog.OpConfirmSave:
		if err := dialog.ShowMessage("Saved", "File saved."); err != nil {
			fmt.Fprintf(os.Stderr, "draw-dialog: %v\n", err)
			return 1
		}
		return 0

	case dialog.OpReportError:
		msg := "File save failed."
		if len(args) > 1 {
			msg = strings.Join(args[1:], " ")
		}
		if err := dialog.ShowMessage("Save error", msg); err != nil {
			fmt.Fprintf(os.Stderr, "draw-dialog: %v\n", err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "draw-dialog: unknown prompt %q\n", args[0])
		return 2
	}
}
