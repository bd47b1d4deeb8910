package sim

import (
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
)

// Snapshot is the read-only view external consumers (CLI, dashboard,
// websocket broadcaster) poll between ticks: render codes for every cell
// plus the scalar metrics, with no engine internals exposed.
type Snapshot struct {
	Dims    mapdata.Dims
	Door    geom.Vec3
	Cells   []world.CellKind // flattened, same index convention as world's internal grid: x*(Y*Z)+y*Z+z
	Metrics Metrics
}

// At returns the render code at (x,y,z), or Wall if out of bounds.
func (s Snapshot) At(x, y, z int) world.CellKind {
	if x < 0 || y < 0 || z < 0 || x >= s.Dims.X || y >= s.Dims.Y || z >= s.Dims.Z {
		return world.Wall
	}
	return s.Cells[x*(s.Dims.Y*s.Dims.Z)+y*s.Dims.Z+z]
}
