package sim

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"

// CommandType enumerates the host edit commands the engine accepts
// (spec.md §6 "World lifecycle and editing" plus simulation control).
type CommandType string

const (
	CommandSetCell              CommandType = "SetCell"
	CommandAddRobot             CommandType = "AddRobot"
	CommandLoadMap              CommandType = "LoadMap"
	CommandSetActiveProbability CommandType = "SetActiveProbability"
	CommandSetStartPosition     CommandType = "SetStartPosition"
	CommandReset                CommandType = "Reset"
)

// SetCellPayload carries the coordinate and logical value for a set_cell
// edit (spec.md §4.C3).
type SetCellPayload struct {
	X, Y, Z int
	Kind    world.CellKind
}

// AddRobotPayload carries the coordinate for an explicit robot placement.
type AddRobotPayload struct {
	X, Y, Z int
}

// LoadMapPayload carries the catalog index to load.
type LoadMapPayload struct {
	Index int
}

// SetActiveProbabilityPayload carries the new activation probability,
// clamped to [0,100] by the engine.
type SetActiveProbabilityPayload struct {
	Probability int
}

// SetStartPositionPayload carries the new door coordinate.
type SetStartPositionPayload struct {
	X, Y, Z int
}

// Command is a single staged host edit, tagged by Type with at most one
// populated payload field.
type Command struct {
	Type                 CommandType
	SetCell              *SetCellPayload
	AddRobot             *AddRobotPayload
	LoadMap              *LoadMapPayload
	SetActiveProbability *SetActiveProbabilityPayload
	SetStartPosition     *SetStartPositionPayload
}
