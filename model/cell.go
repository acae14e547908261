package model

import "fmt"

// Cell is a 0-indexed grid coordinate
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
