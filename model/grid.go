package model

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life-board/rules"
)

// Grid represents the game board. The outermost ring of cells is never
// brought to life by the update rule.
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGrid creates a new all-dead grid with the specified dimensions
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", rows, cols)
	}
	g := &Grid{}
	g.resize(rows, cols)
	return g, nil
}

// GetRows returns the number of rows in the grid
func (g *Grid) GetRows() int {
	return g.rows
}

// GetCols returns the number of columns in the grid
func (g *Grid) GetCols() int {
	return g.cols
}

// resize sets the dimensions and clears every cell, reusing rows where possible
func (g *Grid) resize(rows, cols int) {
	g.rows = rows
	g.cols = cols

	if len(g.cells) != rows {
		g.cells = make([][]bool, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]bool, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills every cell
func (g *Grid) Clear() {
	for r := range g.rows {
		clear(g.cells[r])
	}
}

// InBounds reports whether (row, col) lies inside the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsEdge reports whether (row, col) is on the outermost ring
func (g *Grid) IsEdge(row, col int) bool {
	return row == 0 || row == g.rows-1 || col == 0 || col == g.cols-1
}

func (g *Grid) checkBounds(op string, row, col int) error {
	if !g.InBounds(row, col) {
		return errors.Wrapf(ErrOutOfRange, "[%s] (%d,%d) on %dx%d grid", op, row, col, g.rows, g.cols)
	}
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(row, col int) (rules.State, error) {
	if err := g.checkBounds("Get", row, col); err != nil {
		return rules.Dead, err
	}
	return rules.FromBool(g.cells[row][col]), nil
}

// Set sets the state of a cell
func (g *Grid) Set(row, col int, state rules.State) error {
	if err := g.checkBounds("Set", row, col); err != nil {
		return err
	}
	g.cells[row][col] = state.IsAlive()
	return nil
}

// Toggle flips a cell and returns its new state
func (g *Grid) Toggle(row, col int) (rules.State, error) {
	if err := g.checkBounds("Toggle", row, col); err != nil {
		return rules.Dead, err
	}
	g.cells[row][col] = !g.cells[row][col]
	return rules.FromBool(g.cells[row][col]), nil
}

// CountLiveNeighbors counts living cells in the king's-move neighborhood,
// ignoring positions that fall outside the grid
func (g *Grid) CountLiveNeighbors(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cols-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue // Skip the cell itself
			}
			if g.cells[r][c] {
				count++
			}
		}
	}

	return count
}

// NextState returns the state (row, col) will have in the next generation.
// Edge cells are always Dead. The grid is not modified.
func (g *Grid) NextState(row, col int) (rules.State, error) {
	if err := g.checkBounds("NextState", row, col); err != nil {
		return rules.Dead, err
	}
	if g.IsEdge(row, col) {
		return rules.Dead, nil
	}
	return rules.ApplyConwayRules(g.CountLiveNeighbors(row, col), rules.FromBool(g.cells[row][col])), nil
}

// NextGeneration computes the full next generation into a separate buffer
// and returns it with its living cell count. The receiver is only read.
// Rows are split into at most workers bands evaluated concurrently.
func (g *Grid) NextGeneration(workers int, pool *GridPool) (*Grid, int, error) {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.rows, g.cols)
	} else {
		next = &Grid{}
		next.resize(g.rows, g.cols)
	}

	var (
		eg           errgroup.Group
		bands        = min(max(workers, 1), g.rows)
		rowsPerBand  = (g.rows + bands - 1) / bands // Ceiling division
		alivePerBand = make([]int, bands)
	)

	for i := range bands {
		var (
			startRow = i * rowsPerBand
			endRow   = min(startRow+rowsPerBand, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			for r := startRow; r < endRow; r++ {
				for c := range g.cols {
					state, err := g.NextState(r, c)
					if err != nil {
						return err
					}
					if state.IsAlive() {
						next.cells[r][c] = true
						alivePerBand[i]++
					}
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		GridToPool(next, pool)
		return nil, 0, errors.Wrap(err, "[NextGeneration] failed to compute band")
	}

	alive := 0
	for _, n := range alivePerBand {
		alive += n
	}
	return next, alive, nil
}

// Apply commits next into the grid cell by cell
func (g *Grid) Apply(next *Grid) error {
	if err := g.sameShape("Apply", next); err != nil {
		return err
	}
	for r := range g.rows {
		copy(g.cells[r], next.cells[r])
	}
	return nil
}

func (g *Grid) sameShape(op string, other *Grid) error {
	if other == nil || other.rows != g.rows || other.cols != g.cols {
		otherRows, otherCols := 0, 0
		if other != nil {
			otherRows, otherCols = other.rows, other.cols
		}
		return errors.Wrapf(ErrDimensionMismatch, "[%s] %dx%d vs %dx%d", op, g.rows, g.cols, otherRows, otherCols)
	}
	return nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				count++
			}
		}
	}
	return
}

// Any reports whether at least one cell is alive
func (g *Grid) Any() bool {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				return true
			}
		}
	}
	return false
}

// Cells returns a copy of the cell matrix
func (g *Grid) Cells() [][]bool {
	out := make([][]bool, g.rows)
	for r := range g.rows {
		out[r] = append([]bool(nil), g.cells[r]...)
	}
	return out
}

// LiveCells returns the coordinates of every living cell in row-major order
func (g *Grid) LiveCells() []Cell {
	live := make([]Cell, 0)
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] {
				live = append(live, Cell{Row: r, Col: c})
			}
		}
	}
	return live
}
