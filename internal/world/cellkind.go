package world

// CellKind is the logical render code exposed to consumers (spec §3): a
// view derived from the underlying world state, never stored directly.
type CellKind int

const (
	Empty CellKind = iota
	Wall
	ActiveRobot
	SettledRobot
	Door
	SleepingRobot
)

// CellState is the internal neighborhood code used only inside
// observation buffers (spec §3).
type CellState int

const (
	StateWall CellState = iota
	StateOccupied
	StateFree
)
