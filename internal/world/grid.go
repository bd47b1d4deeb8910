// Package world implements the 3D grid world model (spec component C3),
// the per-robot record (C4), local observation (C5), the reachability
// tester (C6), and the robot decision procedure (C7).
package world

import (
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
)

// MaxDim is the maximum extent of any single dimension.
const MaxDim = 20

// Unreachable marks a cell with no BFS path from the door.
const Unreachable = 1 << 30

// World is the mutable 3D grid: walkability, the door, the BFS distance
// field, the robot arena, and the robot-position index.
type World struct {
	Dims mapdata.Dims
	Door geom.Vec3

	walkable []bool
	distance []int
	robotAt  []int // index into Robots, or -1

	Robots     []Robot
	RobotCount int

	availableCells int
	lastMapIndex   int

	anomaly AnomalySink
}

// AnomalySink receives optional, behavior-neutral diagnostics (spec §7's
// "diagnostic anomalies"). It is never required: a nil sink drops events.
type AnomalySink interface {
	SettlementAnomaly(robotID, expectedTick, actualTick int)
	RobotArenaOverflow()
}

// SetAnomalySink installs the diagnostic sink used for settlement-timing
// anomalies and arena-overflow notices. Passing nil disables reporting.
func (w *World) SetAnomalySink(sink AnomalySink) {
	w.anomaly = sink
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	if v > MaxDim {
		return MaxDim
	}
	return v
}

// MaxRobots returns the robot-arena capacity for the current dimensions:
// one robot per cell in the volume.
func (w *World) MaxRobots() int {
	return w.Dims.Count()
}

// Init clears all state and allocates fresh grids for the given
// dimensions, clamped to MaxDim per axis.
func (w *World) Init(x, y, z int) {
	w.Dims = mapdata.Dims{X: clampDim(x), Y: clampDim(y), Z: clampDim(z)}
	n := w.Dims.Count()
	w.walkable = make([]bool, n)
	w.distance = make([]int, n)
	w.robotAt = make([]int, n)
	for i := range w.robotAt {
		w.robotAt[i] = -1
	}
	w.Robots = w.Robots[:0]
	w.RobotCount = 0
	w.availableCells = 0
	w.Door = geom.Vec3{}
}

func (w *World) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < w.Dims.X && y < w.Dims.Y && z < w.Dims.Z
}

func (w *World) index(x, y, z int) int {
	return x*(w.Dims.Y*w.Dims.Z) + y*w.Dims.Z + z
}

// Walkable reports whether (x,y,z) is walkable. Out-of-bounds is false.
func (w *World) Walkable(x, y, z int) bool {
	if !w.inBounds(x, y, z) {
		return false
	}
	return w.walkable[w.index(x, y, z)]
}

// Distance returns the BFS distance from the door to (x,y,z), or
// Unreachable if the cell is unreachable or out of bounds.
func (w *World) Distance(x, y, z int) int {
	if !w.inBounds(x, y, z) {
		return Unreachable
	}
	return w.distance[w.index(x, y, z)]
}

// AvailableCells returns the count of walkable cells in the current map.
func (w *World) AvailableCells() int {
	return w.availableCells
}

// RobotAtCell returns the robot id occupying (x,y,z), or -1 if none or
// out of bounds.
func (w *World) RobotAtCell(x, y, z int) int {
	if !w.inBounds(x, y, z) {
		return -1
	}
	return w.robotAt[w.index(x, y, z)]
}

// SetCell updates walkability at (x,y,z) for the given logical value and
// applies the side effects spec.md §4.C3 describes. Out-of-range
// coordinates are silently ignored.
func (w *World) SetCell(x, y, z int, v CellKind) {
	if !w.inBounds(x, y, z) {
		return
	}
	idx := w.index(x, y, z)
	wasWalkable := w.walkable[idx]
	isWalkable := v == Empty || v == ActiveRobot || v == SettledRobot || v == Door
	w.walkable[idx] = isWalkable
	if isWalkable && !wasWalkable {
		w.availableCells++
	} else if !isWalkable && wasWalkable {
		w.availableCells--
	}

	existing := w.robotAt[idx]

	switch v {
	case Wall:
		if existing >= 0 && w.Robots[existing].Active {
			w.Robots[existing].Active = false
			w.Robots[existing].SettledAge = 6
		}
	case ActiveRobot, SettledRobot:
		if existing < 0 {
			w.appendRobot(geom.Vec3{X: x, Y: y, Z: z}, v == ActiveRobot)
		} else {
			w.Robots[existing].Active = v == ActiveRobot
		}
	case Door:
		w.Door = geom.Vec3{X: x, Y: y, Z: z}
	case Empty:
		// Does not remove an existing robot.
	}
}

// AddRobot appends a new active robot at (x,y,z). Suppressed if the arena
// is already at capacity.
func (w *World) AddRobot(x, y, z int) {
	w.appendRobot(geom.Vec3{X: x, Y: y, Z: z}, true)
}

func (w *World) appendRobot(pos geom.Vec3, active bool) {
	if w.RobotCount >= w.MaxRobots() {
		if w.anomaly != nil {
			w.anomaly.RobotArenaOverflow()
		}
		return
	}
	id := w.RobotCount
	w.Robots = append(w.Robots, newRobot(id, pos, active))
	w.RobotCount++
}

// SetStartPosition retargets the door cell without altering walkability.
func (w *World) SetStartPosition(x, y, z int) {
	if !w.inBounds(x, y, z) {
		return
	}
	w.Door = geom.Vec3{X: x, Y: y, Z: z}
}

// LoadMap decodes catalog entry i into the grid, sets the door, runs BFS,
// and resets the robot arena. An out-of-range index falls back to entry 0
// when the catalog is non-empty, and is a no-op when it is empty (per
// spec.md §7).
func (w *World) LoadMap(catalog *mapdata.Catalog, i int) {
	m, ok := catalog.Resolve(i)
	if !ok {
		return
	}
	w.lastMapIndex = i
	if i < 0 || i >= catalog.Count() {
		w.lastMapIndex = 0
	}

	w.Init(m.Dims.X, m.Dims.Y, m.Dims.Z)
	for x := 0; x < m.Dims.X; x++ {
		for y := 0; y < m.Dims.Y; y++ {
			for z := 0; z < m.Dims.Z; z++ {
				idx := w.index(x, y, z)
				w.walkable[idx] = m.Walkable(x, y, z)
			}
		}
	}
	w.availableCells = mapdata.Popcount(m.Dims, m.Bits)
	w.Door = m.Door
	w.BFS()
}

// Reset reloads the last loaded map index, which also clears the robot
// arena. World holds no metrics; the engine resets its own.
func (w *World) Reset(catalog *mapdata.Catalog) {
	w.LoadMap(catalog, w.lastMapIndex)
}

// RebuildRobotField clears robotAt and reassigns it by ascending robot id;
// earliest-id wins on collisions (spec invariant I3).
func (w *World) RebuildRobotField() {
	for i := range w.robotAt {
		w.robotAt[i] = -1
	}
	for i := 0; i < w.RobotCount; i++ {
		r := &w.Robots[i]
		if !w.inBounds(r.Position.X, r.Position.Y, r.Position.Z) {
			continue
		}
		idx := w.index(r.Position.X, r.Position.Y, r.Position.Z)
		if w.robotAt[idx] == -1 && w.walkable[idx] {
			w.robotAt[idx] = r.ID
		}
	}
}

// CellView returns the logical render code for (x,y,z) (spec §4.C3).
func (w *World) CellView(x, y, z int) CellKind {
	if !w.inBounds(x, y, z) {
		return Empty
	}
	if x == w.Door.X && y == w.Door.Y && z == w.Door.Z {
		return Door
	}
	idx := w.index(x, y, z)
	if rid := w.robotAt[idx]; rid >= 0 {
		r := &w.Robots[rid]
		if r.Sleeping {
			return SleepingRobot
		}
		if r.Active {
			return ActiveRobot
		}
		return SettledRobot
	}
	if w.walkable[idx] {
		return Empty
	}
	return Wall
}

// cellState returns the internal neighborhood code for (x,y,z) (spec
// §4.C3), used only by observation.
func (w *World) cellState(x, y, z int) CellState {
	if !w.inBounds(x, y, z) {
		return StateWall
	}
	idx := w.index(x, y, z)
	if !w.walkable[idx] {
		return StateWall
	}
	if rid := w.robotAt[idx]; rid >= 0 {
		if w.Robots[rid].Active {
			return StateOccupied
		}
		return StateWall
	}
	return StateFree
}
