package model

// RunState is the control state of a Simulation
type RunState int

const (
	// Idle is the initial state and the state after Reset
	Idle RunState = iota
	// Running means a run loop is stepping the grid
	Running
	// Stopped means the last run ended by pause, extinction or cancellation
	Stopped
)

// String methods allow the run states to be printed
func (s RunState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return "Incorrect State"
	}
}

// Frame is a consistent copy of the board taken between generations
type Frame struct {
	Generation int
	Alive      int
	State      RunState
	Cells      [][]bool
}
