package model

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned for coordinates outside the grid
	ErrOutOfRange = errors.New("cell out of range")
	// ErrInvalidDimensions is returned when a grid would have no cells
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrDimensionMismatch is returned when two grids of different shape are combined
	ErrDimensionMismatch = errors.New("grid dimension mismatch")
)
