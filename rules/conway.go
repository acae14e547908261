package rules

// State is the condition of a single cell.
type State uint8

const (
	Dead State = iota
	Alive
)

// String returns "alive" or "dead".
func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// IsAlive reports whether the state is Alive.
func (s State) IsAlive() bool { return s == Alive }

// FromBool maps true to Alive and false to Dead.
func FromBool(alive bool) State {
	if alive {
		return Alive
	}
	return Dead
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors; a dead cell is born with exactly 3.
*/
func ApplyConwayRules(neighbors int, current State) State {
	if current == Alive {
		return FromBool(neighbors == 2 || neighbors == 3)
	}
	return FromBool(neighbors == 3)
}
