package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/model"
	"github.com/sheikhrachel/go-life-board/utils"
)

const controlsHelp = "click: toggle  right-click: mark start  [s]tart [p]ause [r]eset [q]uit"

var (
	styleAlive   = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleDead    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleEdge    = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	styleMarked  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	styleRunning = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// board draws a simulation on a tcell screen, two columns per cell
type board struct {
	screen  tcell.Screen
	sim     *model.Simulation
	logger  *slog.Logger
	buttons tcell.ButtonMask
}

// runInteractive lets the user edit the grid with the mouse and control the
// run from the keyboard until q, Esc, or Ctrl+C
func runInteractive(ctx context.Context, config utils.Config, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runInteractive] creating screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runInteractive] initializing screen")
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	sim, err := initializeGame(config, logger, func(frame model.Frame) {
		// Redraws happen on the event loop; a full queue only drops a frame.
		_ = screen.PostEvent(tcell.NewEventInterrupt(frame))
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		sim.Pause()
		sim.Wait()
	}()
	go func() {
		<-ctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	b := &board{screen: screen, sim: sim, logger: logger}
	b.draw(sim.Snapshot())

	for ctx.Err() == nil {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			b.draw(sim.Snapshot())
		case *tcell.EventInterrupt:
			if frame, ok := ev.Data().(model.Frame); ok {
				b.draw(frame)
			}
		case *tcell.EventKey:
			if b.handleKey(ctx, ev) {
				return nil
			}
		case *tcell.EventMouse:
			b.handleMouse(ev)
		}
	}
	return nil
}

// handleKey applies a control key and reports whether the user asked to quit
func (b *board) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 's', ' ':
		if !b.sim.Start(ctx) {
			b.logger.Debug("start ignored while running")
		}
	case 'p':
		b.sim.Pause()
	case 'r':
		b.sim.Reset()
	}
	b.draw(b.sim.Snapshot())
	return false
}

// handleMouse toggles the cell under a fresh left click, or its starting mark
// under a fresh right click
func (b *board) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons() &^ b.buttons
	b.buttons = ev.Buttons()

	x, y := ev.Position()
	row, col := y, x/2
	if row >= b.sim.Rows() || col >= b.sim.Cols() {
		return
	}

	switch {
	case pressed&tcell.Button1 != 0:
		if _, err := b.sim.Toggle(row, col); err != nil {
			b.logger.Error("toggle failed", "row", row, "col", col, "err", err)
		}
	case pressed&tcell.Button2 != 0:
		if err := b.sim.ToggleStartingCell(row, col); err != nil {
			b.logger.Error("mark failed", "row", row, "col", col, "err", err)
		}
	default:
		return
	}
	b.draw(b.sim.Snapshot())
}

func (b *board) draw(frame model.Frame) {
	marked := make(map[model.Cell]bool)
	for _, c := range b.sim.StartingConfiguration() {
		marked[c] = true
	}

	rows := len(frame.Cells)
	for row, line := range frame.Cells {
		for col, alive := range line {
			style, glyph := styleDead, ' '
			switch {
			case alive:
				style = styleAlive
			case row == 0 || row == rows-1 || col == 0 || col == len(line)-1:
				style = styleEdge
			case marked[model.Cell{Row: row, Col: col}]:
				style, glyph = styleMarked, '·'
			}
			b.screen.SetContent(col*2, row, glyph, nil, style)
			b.screen.SetContent(col*2+1, row, glyph, nil, style)
		}
	}

	statusStyle := styleStatus
	if frame.State == model.Running {
		statusStyle = styleRunning
	}
	b.drawText(0, rows+1, fmt.Sprintf("%-8s gen %-6d alive %-6d", frame.State, frame.Generation, frame.Alive), statusStyle)
	b.drawText(0, rows+2, controlsHelp, styleStatus)
	b.screen.Show()
}

func (b *board) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		b.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
