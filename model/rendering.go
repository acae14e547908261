package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
	gridPosEdge  = "··"

	macosClearCmd = "clear"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders a frame; dead edge cells are dotted to show the frozen ring
func (r *TerminalRenderer) Display(f Frame) {
	w := r.out()
	rows := len(f.Cells)
	for row, line := range f.Cells {
		for col, alive := range line {
			switch {
			case alive:
				fmt.Fprint(w, gridPosBlock)
			case row == 0 || row == rows-1 || col == 0 || col == len(line)-1:
				fmt.Fprint(w, gridPosEdge)
			default:
				fmt.Fprint(w, gridPosEmpty)
			}
		}
		fmt.Fprintln(w)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	var cmd *exec.Cmd
	cmd = exec.Command(macosClearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}
