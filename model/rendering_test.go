package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalRendererDisplay(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalRenderer{Out: &buf}
	r.Display(Frame{Cells: [][]bool{
		{false, false, false},
		{false, true, false},
		{false, false, false},
	}})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != gridPosEdge+gridPosEdge+gridPosEdge {
		t.Fatalf("edge row rendered as %q", lines[0])
	}
	if lines[1] != gridPosEdge+gridPosBlock+gridPosEdge {
		t.Fatalf("middle row rendered as %q", lines[1])
	}
}

func TestPlaceSkipsCellsOutsideGrid(t *testing.T) {
	g, err := NewGrid(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	g.AddGlider(2, 1)
	// Only the top-left part of the glider fits.
	if got := g.LiveCells(); len(got) != 2 || got[0] != (Cell{2, 2}) || got[1] != (Cell{3, 3}) {
		t.Fatalf("LiveCells = %v", got)
	}
	g.AddBlinker(-1, 0)
	if g.CountLivingCells() != 2 {
		t.Fatal("blinker outside the grid changed it")
	}
}
