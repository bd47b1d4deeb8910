package mapdata

import "github.com/Kristofy/uniform-dispersion-problem-3d/internal/geom"

// buildRect packs a walkability predicate and door into a Map, the way the
// original packer would have baked it ahead of time; here the bits are
// computed once at package init instead of shipped as a literal blob.
func buildRect(name string, d Dims, door geom.Vec3, walkable func(x, y, z int) bool) Map {
	return Map{
		Name: name,
		Dims: d,
		Door: door,
		Bits: EncodeBits(d, walkable),
	}
}

// SingleCellRoom is the 1x1x1 room of spec.md §8 scenario 1: the one cell
// is the door and is walkable.
func SingleCellRoom() Map {
	d := Dims{1, 1, 1}
	return buildRect("single-cell-room", d, geom.Vec3{0, 0, 0}, func(x, y, z int) bool {
		return true
	})
}

// StraightCorridor is the 1x1x5 corridor of spec.md §8 scenario 2: all
// cells walkable, door at z=0.
func StraightCorridor() Map {
	d := Dims{1, 1, 5}
	return buildRect("straight-corridor", d, geom.Vec3{0, 0, 0}, func(x, y, z int) bool {
		return true
	})
}

// VerticalShaft is the 1x3x1 column of spec.md §8 scenario 3: all cells
// walkable, door at y=0, used to exercise the "prefer up" decision rule.
func VerticalShaft() Map {
	d := Dims{1, 3, 1}
	return buildRect("vertical-shaft", d, geom.Vec3{0, 0, 0}, func(x, y, z int) bool {
		return true
	})
}

// CrossRoom is the 3x1x3 single-layer room of spec.md §8 scenario 4: a
// plus-shaped walkable area (corners excluded) with the door at the
// center, used to exercise settlement rejection via the reachability
// tester — settling the center cell would sever the two opposite arms.
func CrossRoom() Map {
	d := Dims{3, 1, 3}
	return buildRect("cross-room", d, geom.Vec3{1, 0, 1}, func(x, y, z int) bool {
		if x == 1 || z == 1 {
			return true
		}
		return false
	})
}

// DemoMap ports original_source/src/wasm/main.cpp's create_demo_grid: a
// 3x4x4 walled room with the door centered on one wall face.
func DemoMap() Map {
	d := Dims{3, 4, 4}
	door := geom.Vec3{2, 1, 1}
	return buildRect("demo-grid", d, door, func(x, y, z int) bool {
		if x == door.X && y == door.Y && z == door.Z {
			return true
		}
		if x == 0 || x == 2 || y == 0 || y == 3 || z == 0 || z == 3 {
			return false
		}
		return true
	})
}

// DefaultCatalog returns the built-in catalog shipped with the engine, in
// a fixed order: catalog index is stable across runs.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		SingleCellRoom(),
		StraightCorridor(),
		VerticalShaft(),
		CrossRoom(),
		DemoMap(),
	)
}
